package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row. The password hash never serializes.
type User struct {
	ID           uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
