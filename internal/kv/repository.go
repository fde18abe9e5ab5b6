package kv

import (
	"context"
)

// Repository is a key-value store of opaque documents.
//
// Contract:
//   - Get returns (nil, nil) when the key is absent.
//   - Set inserts or replaces the value.
//   - Delete is idempotent.
//   - List returns a snapshot of all pairs.
//   - Clear removes every key owned by the repository.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
