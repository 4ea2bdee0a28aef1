package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// PostgresStore persists budgets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, b *Budget) error {
	query := `
		INSERT INTO budgets (budget_id, user_id, name, amount, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		b.ID, b.OwnerID, b.Name, b.Amount, b.StartDate, b.EndDate).
		Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Budget, error) {
	query := `
		SELECT budget_id, user_id, name, amount, start_date, end_date, created_at
		FROM budgets
		WHERE budget_id = $1 AND user_id = $2
	`
	var b Budget
	err := s.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&b.ID, &b.OwnerID, &b.Name, &b.Amount, &b.StartDate, &b.EndDate, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "budget not found")
		}
		return nil, fmt.Errorf("find budget: %w", err)
	}
	return &b, nil
}

func (s *PostgresStore) Update(ctx context.Context, b *Budget) error {
	query := `
		UPDATE budgets
		SET name = $1, amount = $2, start_date = $3, end_date = $4
		WHERE budget_id = $5 AND user_id = $6
	`
	res, err := s.db.ExecContext(ctx, query,
		b.Name, b.Amount, b.StartDate, b.EndDate, b.ID, b.OwnerID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(res, "budget not found")
}

func (s *PostgresStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res, "budget not found")
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Budget, error) {
	query := `
		SELECT budget_id, user_id, name, amount, start_date, end_date, created_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY start_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := make([]Budget, 0)
	for rows.Next() {
		var b Budget
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.Amount, &b.StartDate, &b.EndDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func requireRow(res sql.Result, notFoundMsg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return nil
}
