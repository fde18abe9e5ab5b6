package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamingclub/internal/dbx"
)

type sqlDB interface {
	dbx.DBTX
	dbx.TxBeginner
}

type queries struct {
	get, upsert, delete, list, clear string
}

var sqliteQueries = queries{
	get: `SELECT value FROM kv_store WHERE key = ?`,
	upsert: `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	delete: `DELETE FROM kv_store WHERE key = ?`,
	list:   `SELECT key, value FROM kv_store`,
	clear:  `DELETE FROM kv_store`,
}

var postgresQueries = queries{
	get: `SELECT value FROM kv_store WHERE key = $1`,
	upsert: `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	delete: `DELETE FROM kv_store WHERE key = $1`,
	list:   `SELECT key, value FROM kv_store`,
	clear:  `DELETE FROM kv_store`,
}

// SQLRepository stores documents in the kv_store table. The schema is created
// by Migrate.
type SQLRepository struct {
	db sqlDB
	q  queries
}

// NewSQLiteRepository expects a database opened with the "sqlite" driver.
func NewSQLiteRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, q: sqliteQueries}
}

// NewPostgresRepository expects a database opened with the "pgx" driver.
func NewPostgresRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries}
}

func (r *SQLRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, r.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (r *SQLRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, r.q.upsert, key, value); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

// SetMany writes all pairs in one transaction.
func (r *SQLRepository) SetMany(ctx context.Context, pairs map[string][]byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range pairs {
			if _, err := tx.ExecContext(ctx, r.q.upsert, k, v); err != nil {
				return fmt.Errorf("failed to set kv[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.delete, key); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}
	return result, nil
}

func (r *SQLRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.q.clear); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}
