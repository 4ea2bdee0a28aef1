package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (user_id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash).
		Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findOne(ctx,
		`SELECT user_id, name, email, password_hash, created_at FROM users WHERE user_id = $1`, id)
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx,
		`SELECT user_id, name, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (s *PostgresStore) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
