package budget

import (
	"context"

	"github.com/google/uuid"
)

// Store abstracts budget persistence. Every read and write is scoped to the
// owning user; a budget is never visible to anyone else.
type Store interface {
	Create(ctx context.Context, b *Budget) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Budget, error)
	Update(ctx context.Context, b *Budget) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Budget, error)
}
