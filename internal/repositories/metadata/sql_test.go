package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*SQLRepository, *sql.DB) {
	t.Helper()
	db := testutil.SQLite(t)
	return NewSQLRepository(db, dbx.SQLite), db
}

func TestSetAndGet(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "session_token", []byte("tok-1")))

	v, err := r.Get(ctx, "session_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)
}

func TestGet_Absent(t *testing.T) {
	r, _ := setup(t)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_Idempotent(t *testing.T) {
	r, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestErrorsWrapped(t *testing.T) {
	r, db := setup(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata[k]")
}
