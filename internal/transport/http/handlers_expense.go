package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"exptrack/internal/expense"
	"exptrack/pkg/platform/httputil"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type createExpenseRequest struct {
	Name        string  `json:"name"`
	Amount      int64   `json:"amount"`
	Date        string  `json:"date"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	BudgetID    *string `json:"budget_id"`
}

type updateExpenseRequest struct {
	Name        *string `json:"name"`
	Amount      *int64  `json:"amount"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	BudgetID    *string `json:"budget_id"`
}

func (h *Handler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	expenses, err := h.expenses.ListByOwner(r.Context(), id.UserID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list expenses", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"expenses": expenses}).Write(w)
}

// handleCreateExpense persists the expense and, when it references a budget,
// hands the budget off to the alert engine after the insert commits. The
// response never waits on the evaluation.
func (h *Handler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error("invalid request body", http.StatusBadRequest).Write(w)
		return
	}

	if len(req.Name) < 2 {
		httputil.Error("name min length 2", http.StatusBadRequest).Write(w)
		return
	}
	if req.Amount <= 0 {
		httputil.Error("amount must be positive", http.StatusBadRequest).Write(w)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			httputil.Error("invalid date format, expected YYYY-MM-DD", http.StatusBadRequest).Write(w)
			return
		}
		date = parsed
	}

	categoryID, ok := optionalUUID(w, req.CategoryID, "category_id")
	if !ok {
		return
	}
	budgetID, ok := optionalUUID(w, req.BudgetID, "budget_id")
	if !ok {
		return
	}
	if !h.requireOwnBudget(w, r, budgetID, id.UserID) {
		return
	}

	e := &expense.Expense{
		ID:          uuid.New(),
		OwnerID:     id.UserID,
		Name:        req.Name,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		CategoryID:  categoryID,
		BudgetID:    budgetID,
	}
	if err := h.expenses.Create(r.Context(), e); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create expense", "error", err)
		httputil.FromError(err).Write(w)
		return
	}

	if e.BudgetID != nil {
		h.alerts.Trigger(*e.BudgetID, id.UserID)
	}

	httputil.Created(map[string]any{"expense": e}).Write(w)
}

func (h *Handler) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	e, err := h.expenses.FindByID(r.Context(), expenseID, id.UserID)
	if err != nil {
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"expense": e}).Write(w)
}

func (h *Handler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error("invalid request body", http.StatusBadRequest).Write(w)
		return
	}

	existing, err := h.expenses.FindByID(r.Context(), expenseID, id.UserID)
	if err != nil {
		httputil.FromError(err).Write(w)
		return
	}

	if req.Name != nil {
		if len(*req.Name) < 2 {
			httputil.Error("name min length 2", http.StatusBadRequest).Write(w)
			return
		}
		existing.Name = *req.Name
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			httputil.Error("amount must be positive", http.StatusBadRequest).Write(w)
			return
		}
		existing.Amount = *req.Amount
	}
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			httputil.Error("invalid date format, expected YYYY-MM-DD", http.StatusBadRequest).Write(w)
			return
		}
		existing.Date = parsed
	}
	if req.Description != nil {
		existing.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, ok := optionalUUID(w, req.CategoryID, "category_id")
		if !ok {
			return
		}
		existing.CategoryID = categoryID
	}
	if req.BudgetID != nil {
		budgetID, ok := optionalUUID(w, req.BudgetID, "budget_id")
		if !ok {
			return
		}
		if !h.requireOwnBudget(w, r, budgetID, id.UserID) {
			return
		}
		existing.BudgetID = budgetID
	}

	if err := h.expenses.Update(r.Context(), existing); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update expense", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"expense": existing}).Write(w)
}

func (h *Handler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.expenses.Delete(r.Context(), expenseID, id.UserID); err != nil {
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"deleted": expenseID}).Write(w)
}

func (h *Handler) handleListExpensesByBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	budgetID, ok := pathUUID(w, r, "budget_id")
	if !ok {
		return
	}

	expenses, err := h.expenses.ListByBudget(r.Context(), budgetID, id.UserID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list expenses by budget", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"expenses": expenses}).Write(w)
}

// requireOwnBudget resolves a referenced budget scoped to the caller before
// an expense write commits, so one user's expenses can never feed another
// user's spend aggregate. A budget owned by someone else reads as absent.
func (h *Handler) requireOwnBudget(w http.ResponseWriter, r *http.Request, budgetID *uuid.UUID, ownerID uuid.UUID) bool {
	if budgetID == nil {
		return true
	}
	if _, err := h.budgets.FindByID(r.Context(), *budgetID, ownerID); err != nil {
		httputil.FromError(err).Write(w)
		return false
	}
	return true
}

// optionalUUID parses a nullable UUID field, answering 400 on malformed
// input. A nil or empty value stays nil.
func optionalUUID(w http.ResponseWriter, raw *string, field string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		httputil.Error("invalid "+field+" format", http.StatusBadRequest).Write(w)
		return nil, false
	}
	return &parsed, true
}
