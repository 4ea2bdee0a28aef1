package user

import (
	"context"

	"github.com/google/uuid"
)

// Store abstracts user persistence.
type Store interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
