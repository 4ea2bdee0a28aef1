package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an append-only alert row. Message content is never
// updated after creation; only the sent flag flips.
type Notification struct {
	ID        uuid.UUID `json:"notification_id"`
	OwnerID   uuid.UUID `json:"user_id"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Sent      bool      `json:"is_sent"`
	CreatedAt time.Time `json:"createdAt"`
}
