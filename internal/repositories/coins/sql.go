package coins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
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

func (r *SQLRepository) Ensure(ctx context.Context, ticker, displayName string) error {
	query := r.dialect.Rebind(`
		INSERT INTO coins (ticker, display_name) VALUES (?, ?)
		ON CONFLICT (ticker) DO UPDATE
		SET display_name = CASE WHEN coins.display_name = '' THEN excluded.display_name ELSE coins.display_name END`)

	if _, err := r.db.ExecContext(ctx, query, ticker, displayName); err != nil {
		return fmt.Errorf("failed to ensure coin %s: %w", ticker, err)
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, ticker string) (*models.Coin, error) {
	query := r.dialect.Rebind(`SELECT ticker, display_name, quote_id FROM coins WHERE ticker = ?`)

	var (
		c       models.Coin
		quoteID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, ticker).Scan(&c.Ticker, &c.DisplayName, &quoteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to get coin %s: %w", ticker, err)
	}
	c.QuoteID = quoteID.String
	return &c, nil
}

func (r *SQLRepository) SetQuoteID(ctx context.Context, ticker, quoteID string) error {
	query := r.dialect.Rebind(`
		INSERT INTO coins (ticker, display_name, quote_id) VALUES (?, '', ?)
		ON CONFLICT (ticker) DO UPDATE SET quote_id = excluded.quote_id`)

	if _, err := r.db.ExecContext(ctx, query, ticker, quoteID); err != nil {
		return fmt.Errorf("failed to set quote id for %s: %w", ticker, err)
	}
	return nil
}
