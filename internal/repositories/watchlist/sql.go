package watchlist

import (
	"context"
	"database/sql"
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

func (r *SQLRepository) Add(ctx context.Context, owner, ticker string) error {
	query := r.dialect.Rebind(`INSERT INTO watchlist (owner, ticker) VALUES (?, ?) ON CONFLICT DO NOTHING`)
	if _, err := r.db.ExecContext(ctx, query, owner, ticker); err != nil {
		return fmt.Errorf("failed to add %s to watch list: %w", ticker, err)
	}
	return nil
}

func (r *SQLRepository) Remove(ctx context.Context, owner, ticker string) (bool, error) {
	query := r.dialect.Rebind(`DELETE FROM watchlist WHERE owner = ? AND ticker = ?`)
	res, err := r.db.ExecContext(ctx, query, owner, ticker)
	if err != nil {
		return false, fmt.Errorf("failed to remove %s from watch list: %w", ticker, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove %s from watch list: %w", ticker, err)
	}
	return n > 0, nil
}

func (r *SQLRepository) List(ctx context.Context, owner string) ([]models.Coin, error) {
	query := r.dialect.Rebind(`
		SELECT c.ticker, c.display_name, c.quote_id
		FROM watchlist w JOIN coins c ON c.ticker = w.ticker
		WHERE w.owner = ?
		ORDER BY c.ticker`)

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list watch list: %w", err)
	}
	defer rows.Close()

	var out []models.Coin
	for rows.Next() {
		var (
			c       models.Coin
			quoteID sql.NullString
		)
		if err := rows.Scan(&c.Ticker, &c.DisplayName, &quoteID); err != nil {
			return nil, fmt.Errorf("failed to scan watch list row: %w", err)
		}
		c.QuoteID = quoteID.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watch list rows: %w", err)
	}
	return out, nil
}

func (r *SQLRepository) Count(ctx context.Context, owner string) (int, error) {
	var n int
	query := r.dialect.Rebind(`SELECT COUNT(*) FROM watchlist WHERE owner = ?`)
	if err := r.db.QueryRowContext(ctx, query, owner).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count watch list: %w", err)
	}
	return n, nil
}
