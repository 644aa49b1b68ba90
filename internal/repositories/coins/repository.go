// Package coins persists the ticker table and the cached mapping from a
// ticker to the market data provider's coin id.
package coins

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

type Repository interface {
	// Ensure creates the coin if it does not exist. A non-empty displayName
	// fills in a missing name but never overwrites one.
	Ensure(ctx context.Context, ticker, displayName string) error
	Get(ctx context.Context, ticker string) (*models.Coin, error)
	SetQuoteID(ctx context.Context, ticker, quoteID string) error
}
