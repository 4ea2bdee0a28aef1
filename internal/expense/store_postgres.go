package expense

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// PostgresStore persists expenses in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const expenseColumns = `expense_id, user_id, name, amount, date, description, category_id, budget_id, created_at`

func (s *PostgresStore) Create(ctx context.Context, e *Expense) error {
	query := `
		INSERT INTO expenses (expense_id, user_id, name, amount, date, description, category_id, budget_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		e.ID, e.OwnerID, e.Name, e.Amount, e.Date, e.Description, e.CategoryID, e.BudgetID).
		Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id, ownerID uuid.UUID) (*Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND user_id = $2`
	var e Expense
	err := s.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&e.ID, &e.OwnerID, &e.Name, &e.Amount, &e.Date, &e.Description, &e.CategoryID, &e.BudgetID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dErrors.New(dErrors.CodeNotFound, "expense not found")
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return &e, nil
}

func (s *PostgresStore) Update(ctx context.Context, e *Expense) error {
	query := `
		UPDATE expenses
		SET name = $1, amount = $2, date = $3, description = $4, category_id = $5, budget_id = $6
		WHERE expense_id = $7 AND user_id = $8
	`
	res, err := s.db.ExecContext(ctx, query,
		e.Name, e.Amount, e.Date, e.Description, e.CategoryID, e.BudgetID, e.ID, e.OwnerID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return requireRow(res, "expense not found")
}

func (s *PostgresStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE expense_id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return requireRow(res, "expense not found")
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY date DESC`
	return s.list(ctx, query, ownerID)
}

func (s *PostgresStore) ListByBudget(ctx context.Context, budgetID, ownerID uuid.UUID) ([]Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE budget_id = $1 AND user_id = $2 ORDER BY date DESC`
	return s.list(ctx, query, budgetID, ownerID)
}

func (s *PostgresStore) AggregateSpendForBudget(ctx context.Context, budgetID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE budget_id = $1`, budgetID).
		Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("aggregate spend: %w", err)
	}
	return total, nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Name, &e.Amount, &e.Date, &e.Description, &e.CategoryID, &e.BudgetID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
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
