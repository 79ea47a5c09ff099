package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "tok-1"))

	v, err := r.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "tok-1", v)
}

func TestGet_NotExists_ReturnsNotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.Empty(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyEmail, "old@example.com"))
	require.NoError(t, r.Set(ctx, KeyEmail, "new@example.com"))

	v, err := r.Get(ctx, KeyEmail)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", v)
}

func TestDelete_RemovesKeys_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyAccessToken, "a"))
	require.NoError(t, r.Set(ctx, KeyRefreshToken, "r"))
	require.NoError(t, r.Set(ctx, KeyEmail, "e"))

	require.NoError(t, r.Delete(ctx, KeyAccessToken, KeyRefreshToken))
	require.NoError(t, r.Delete(ctx, KeyAccessToken))

	_, err := r.Get(ctx, KeyAccessToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.Get(ctx, KeyRefreshToken)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	v, err := r.Get(ctx, KeyEmail)
	require.NoError(t, err)
	assert.Equal(t, "e", v)
}

func TestClear_RemovesEverything(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))
	require.NoError(t, r.Clear(ctx))

	_, err := r.Get(ctx, "a")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRepository_WorksInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(tx).Set(ctx, "k", "v"))
	require.NoError(t, tx.Rollback())

	_, err = NewSQLiteRepository(db).Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestErrorsAreWrapped_WhenTableMissing(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err = r.Get(ctx, "k")
	assert.ErrorContains(t, err, "failed to get metadata[k]")
	assert.ErrorContains(t, r.Set(ctx, "k", "v"), "failed to set metadata[k]")
	assert.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	assert.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
}
