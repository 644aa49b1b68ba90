// Package watchlist persists the coins each user follows on the price
// tracker.
package watchlist

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

type Repository interface {
	// Add is idempotent. The coin row must already exist.
	Add(ctx context.Context, owner, ticker string) error
	// Remove reports whether an entry was deleted.
	Remove(ctx context.Context, owner, ticker string) (bool, error)
	// List returns the owner's coins ordered by ticker.
	List(ctx context.Context, owner string) ([]models.Coin, error)
	Count(ctx context.Context, owner string) (int, error)
}
