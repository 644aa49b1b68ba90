package transactions

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: d}
}

func (r *SQLRepository) Create(ctx context.Context, t *models.Transaction) error {
	query := r.dialect.Rebind(`
		INSERT INTO transactions (owner, ticker, value, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	// Decimals go in as their exact string form.
	err := r.db.QueryRowContext(ctx, query,
		t.Owner, t.Ticker, t.Value.String(), t.Quantity.String(), t.CreatedAt).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, owner string) ([]models.Transaction, error) {
	query := r.dialect.Rebind(`
		SELECT id, owner, ticker, value, quantity, created_at
		FROM transactions WHERE owner = ? ORDER BY id`)
	return r.list(ctx, query, owner)
}

func (r *SQLRepository) ListByOwnerTicker(ctx context.Context, owner, ticker string) ([]models.Transaction, error) {
	query := r.dialect.Rebind(`
		SELECT id, owner, ticker, value, quantity, created_at
		FROM transactions WHERE owner = ? AND ticker = ? ORDER BY id`)
	return r.list(ctx, query, owner, ticker)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Owner, &t.Ticker, &t.Value, &t.Quantity, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return out, nil
}
