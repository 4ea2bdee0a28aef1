package category

import (
	"time"

	"github.com/google/uuid"
)

// Category labels expenses. A nil OwnerID marks a global category visible
// to every user.
type Category struct {
	ID        uuid.UUID  `json:"category_id"`
	OwnerID   *uuid.UUID `json:"user_id,omitempty"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
}
