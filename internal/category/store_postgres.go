package category

import (
	"context"
	"database/sql"
	"fmt"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// PostgresStore persists categories in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (category_id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query, c.ID, c.OwnerID, c.Name).Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	// Global categories (NULL user_id) cannot be deleted by anyone.
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE category_id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return dErrors.New(dErrors.CodeNotFound, "category not found")
	}
	return nil
}

func (s *PostgresStore) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Category, error) {
	query := `
		SELECT category_id, user_id, name, created_at
		FROM categories
		WHERE user_id = $1 OR user_id IS NULL
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
