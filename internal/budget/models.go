package budget

import (
	"time"

	"github.com/google/uuid"
)

// Budget is a spending limit over a date range, owned by one user.
// Amount is in minor currency units.
type Budget struct {
	ID        uuid.UUID `json:"budget_id"`
	OwnerID   uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Amount    int64     `json:"amount"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
}
