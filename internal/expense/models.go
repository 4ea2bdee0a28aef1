package expense

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single spend record, optionally attributed to a category
// and/or a budget. Amount is in minor currency units.
type Expense struct {
	ID          uuid.UUID  `json:"expense_id"`
	OwnerID     uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Amount      int64      `json:"amount"`
	Date        time.Time  `json:"date"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	BudgetID    *uuid.UUID `json:"budget_id,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
