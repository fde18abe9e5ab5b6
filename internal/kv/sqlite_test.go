package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository_Contract(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repositoryContract(t, NewSQLiteRepository(db))
}

func TestSQLiteRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profile", "gamingclub.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(db).Set(ctx, "cart", []byte(`[{"id":1,"quantity":2}]`)))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, err := NewSQLiteRepository(db).Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"quantity":2}]`, string(v))
}

func TestSQLiteRepository_SetMany(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)
	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"products":         []byte(`[]`),
		"gamingclub_users": []byte(`[]`),
	}))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOpen_Memory(t *testing.T) {
	r, closer, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	assert.IsType(t, &MemoryRepository{}, r)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), Options{Backend: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
}
