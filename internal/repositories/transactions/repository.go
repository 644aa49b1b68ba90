// Package transactions persists the signed buy/sell ledger.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

type Repository interface {
	// Create inserts t and sets t.ID.
	Create(ctx context.Context, t *models.Transaction) error
	// ListByOwner returns the owner's transactions in insertion order.
	ListByOwner(ctx context.Context, owner string) ([]models.Transaction, error)
	// ListByOwnerTicker is ListByOwner restricted to one ticker.
	ListByOwnerTicker(ctx context.Context, owner, ticker string) ([]models.Transaction, error)
}
