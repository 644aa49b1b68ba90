package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Dir returns the embedded migration directory for d.
func Dir(d dbx.Dialect) string {
	if d == dbx.Postgres {
		return PostgresDir
	}
	return SQLiteDir
}

// Up applies every pending migration for dialect d.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect %s: %w", d, err)
	}
	if err := gooseUpContext(ctx, db, Dir(d)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
