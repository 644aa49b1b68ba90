// Package users persists registered accounts and their credential records.
package users

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

type Repository interface {
	// Create inserts u. A taken username yields common.ErrDuplicateCredential.
	Create(ctx context.Context, u *models.User) error
	// GetByUsername returns common.ErrorNotFound for unknown users.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
}
