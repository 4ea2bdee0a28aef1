package category

import (
	"context"

	"github.com/google/uuid"
)

// Store abstracts category persistence.
type Store interface {
	Create(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// ListForOwner returns the user's own categories plus the global ones.
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Category, error)
}
