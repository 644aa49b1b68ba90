package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const sqliteParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// migrate is a seam for tests.
var migrate = migrations.Up

// SQLiteDSN turns a plain file path into a modernc sqlite URI with foreign
// keys on and write transactions taking the lock up front. "file:" URIs are
// passed through untouched.
func SQLiteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?" + sqliteParams
}

// Open connects to dsn, applies migrations and returns the pool together
// with a RepositoryManager for its dialect.
func Open(ctx context.Context, dsn string) (*sql.DB, RepositoryManager, error) {
	d := dbx.DialectFromDSN(dsn)

	source := dsn
	if d == dbx.SQLite {
		if dir := filepath.Dir(dsn); !strings.HasPrefix(dsn, "file:") && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		source = SQLiteDSN(dsn)
	}

	db, err := sql.Open(d.DriverName(), source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if d == dbx.SQLite {
		// One writer at a time; see dbx.WithTx.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrate(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, NewSQLRepositoryManager(d), nil
}
