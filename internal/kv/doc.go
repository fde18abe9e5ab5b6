// Package kv is the storage substrate shared by the catalog, cart, session
// and checkout components: a flat key -> JSON document mapping.
//
// Backends
//
//   - MemoryRepository    in-process map, used for the short-lived session scope and in tests
//   - SQLRepository       SQLite (modernc.org/sqlite) or PostgreSQL (pgx) table kv_store
//   - RedisRepository     keys prefixed with "gamingclub:"
//
// Every backend implements Repository. Reads re-parse the document, writes
// replace the whole document, and concurrent writers race with last-writer-wins
// semantics.
//
// Change notification
//
// Observable wraps any Repository and publishes a Change to its subscribers
// after every successful write in the current process. Poll detects writes
// made by other processes sharing the same backend.
package kv
