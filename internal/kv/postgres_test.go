package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

const (
	pgGet    = `(?s)^SELECT\s+value\s+FROM\s+kv_store\s+WHERE\s+key\s*=\s*\$1$`
	pgUpsert = `(?s)INSERT\s+INTO\s+kv_store\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE\s+SET\s+value\s*=\s*EXCLUDED\.value`
	pgDelete = `(?s)^DELETE\s+FROM\s+kv_store\s+WHERE\s+key\s*=\s*\$1$`
	pgList   = `(?s)^SELECT\s+key,\s*value\s+FROM\s+kv_store$`
	pgClear  = `(?s)^DELETE\s+FROM\s+kv_store$`
)

func TestPostgres_Get_Found(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGet).
		WithArgs("products").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":1}]`)))

	v, err := r.Get(context.Background(), "products")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), v)
}

func TestPostgres_Get_NotFound(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGet).
		WithArgs("cart").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := r.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgGet).WithArgs("cart").WillReturnError(errors.New("db down"))

	_, err := r.Get(context.Background(), "cart")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[cart]")
	assert.Contains(t, err.Error(), "db down")
}

func TestPostgres_Set(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectExec(pgUpsert).
		WithArgs("cart", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "cart", []byte(`[]`)))
}

func TestPostgres_SetMany_CommitsTransaction(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgUpsert).
		WithArgs("products", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.SetMany(context.Background(), map[string][]byte{"products": []byte(`[]`)}))
}

func TestPostgres_SetMany_RollsBackOnError(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(pgUpsert).
		WithArgs("products", []byte(`[]`)).
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := r.SetMany(context.Background(), map[string][]byte{"products": []byte(`[]`)})
	require.Error(t, err)
}

func TestPostgres_DeleteListClear(t *testing.T) {
	r, mock := newPostgresWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(pgDelete).WithArgs("cart").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(pgList).WillReturnRows(
		sqlmock.NewRows([]string{"key", "value"}).
			AddRow("products", []byte(`[]`)).
			AddRow("gamingclub_users", []byte(`[{"id":1}]`)))
	mock.ExpectExec(pgClear).WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, r.Delete(ctx, "cart"))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{
		"products":         []byte(`[]`),
		"gamingclub_users": []byte(`[{"id":1}]`),
	}, all)

	require.NoError(t, r.Clear(ctx))
}

func TestPostgres_List_QueryError(t *testing.T) {
	r, mock := newPostgresWithMock(t)

	mock.ExpectQuery(pgList).WillReturnError(sql.ErrConnDone)

	_, err := r.List(context.Background())
	require.ErrorIs(t, err, sql.ErrConnDone)
}
