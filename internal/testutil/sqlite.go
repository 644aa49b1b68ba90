// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/migrations"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// SQLite returns a migrated SQLite database in t's temp dir, closed on
// cleanup.
func SQLite(t testing.TB) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "coinkeeper.db") +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Up(context.Background(), db, dbx.SQLite))
	return db
}

// AddUser inserts a bare user row so owner foreign keys resolve.
func AddUser(t testing.TB, db dbx.DBTX, username string) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO users (username, credential, kdf, iterations, key_length, created_at) VALUES (?, '', 'pbkdf2-sha256', 1, 32, CURRENT_TIMESTAMP)`,
		username)
	require.NoError(t, err)
}
