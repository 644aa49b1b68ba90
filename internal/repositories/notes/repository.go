// Package notes persists per-user text notes.
package notes

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/models"
)

// Every method is scoped by owner; a note belonging to someone else is
// reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, n *models.Note) error
	Get(ctx context.Context, owner string, id int64) (*models.Note, error)
	List(ctx context.Context, owner string) ([]models.Note, error)
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, owner string, id int64) error
}
