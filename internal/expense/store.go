package expense

import (
	"context"

	"github.com/google/uuid"
)

// Store abstracts expense persistence.
type Store interface {
	Create(ctx context.Context, e *Expense) error
	FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Expense, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Expense, error)
	ListByBudget(ctx context.Context, budgetID, ownerID uuid.UUID) ([]Expense, error)

	// AggregateSpendForBudget sums every expense currently referencing the
	// budget. A full aggregate, not an incremental counter, so the result
	// stays correct under concurrent inserts.
	AggregateSpendForBudget(ctx context.Context, budgetID uuid.UUID) (int64, error)
}
