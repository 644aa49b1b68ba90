package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactories(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewSQLRepositoryManager(dbx.Postgres)
	assert.Equal(t, dbx.Postgres, m.Dialect())
	assert.NotNil(t, m.Users(db))
	assert.NotNil(t, m.Coins(db))
	assert.NotNil(t, m.Watchlist(db))
	assert.NotNil(t, m.Transactions(db))
	assert.NotNil(t, m.Notes(db))
	assert.NotNil(t, m.Metadata(db))

	var _ RepositoryManager = m
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:coins.db?"+sqliteParams, SQLiteDSN("coins.db"))
	assert.Equal(t, "file::memory:?cache=shared", SQLiteDSN("file::memory:?cache=shared"))
}

func TestOpen_SQLiteMigratesAndWorks(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "coinkeeper.db")

	db, m, err := Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dbx.SQLite, m.Dialect())

	require.NoError(t, m.Metadata(db).Set(ctx, "k", []byte("v")))
	v, err := m.Metadata(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpen_MigrationError(t *testing.T) {
	orig := migrate
	t.Cleanup(func() { migrate = orig })

	boom := errors.New("boom")
	migrate = func(ctx context.Context, db *sql.DB, d dbx.Dialect) error { return boom }

	_, _, err := Open(context.Background(), filepath.Join(t.TempDir(), "x.db"))
	require.ErrorIs(t, err, boom)
}
