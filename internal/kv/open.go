package kv

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/gamingclub/internal/filex"
	"github.com/dmitrijs2005/gamingclub/internal/kv/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string
	SQLitePath    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open connects to the configured backend, applies migrations where the
// backend needs them and returns the repository with a close function.
func Open(ctx context.Context, opts Options) (Repository, io.Closer, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryRepository(), closerFunc(func() error { return nil }), nil

	case BackendSQLite, "":
		db, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return NewSQLiteRepository(db), db, nil

	case BackendPostgres:
		db, err := OpenPostgres(ctx, opts.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresRepository(db), db, nil

	case BackendRedis:
		client, err := OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisRepository(client), client, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

// OpenSQLite opens (creating if needed) the database file at path and
// migrates it. ":memory:" is accepted for throwaway stores.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer at a time, and a single connection keeps ":memory:" stable
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := Migrate(ctx, db, BackendSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres connects through the pgx database/sql driver and migrates.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := Migrate(ctx, db, BackendPostgres); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Migrate applies the embedded goose migrations for backend ("sqlite" or
// "postgres").
func Migrate(ctx context.Context, db *sql.DB, backend string) error {
	dialect := "postgres"
	if backend == BackendSQLite {
		dialect = "sqlite3"
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, backend); err != nil {
		return fmt.Errorf("migrate %s: %w", backend, err)
	}
	return nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
