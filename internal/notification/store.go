package notification

import (
	"context"

	"github.com/google/uuid"
)

// Store abstracts notification persistence.
type Store interface {
	Insert(ctx context.Context, ownerID uuid.UUID, category, message string) error
	ListUnsent(ctx context.Context, ownerID uuid.UUID) ([]Notification, error)
	MarkSent(ctx context.Context, ids []uuid.UUID) error
}
