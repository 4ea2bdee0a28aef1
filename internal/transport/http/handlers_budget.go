package httptransport

import (
	"encoding/json"
	"net/http"
	"time"

	"exptrack/internal/budget"
	"exptrack/pkg/platform/httputil"

	"github.com/google/uuid"
)

type createBudgetRequest struct {
	Name      string `json:"name"`
	Amount    int64  `json:"amount"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type updateBudgetRequest struct {
	Name      *string `json:"name"`
	Amount    *int64  `json:"amount"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func (h *Handler) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgets.ListByOwner(r.Context(), id.UserID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list budgets", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"budgets": budgets}).Write(w)
}

func (h *Handler) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req createBudgetRequest
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

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		httputil.Error("invalid startDate format, expected YYYY-MM-DD", http.StatusBadRequest).Write(w)
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		httputil.Error("invalid endDate format, expected YYYY-MM-DD", http.StatusBadRequest).Write(w)
		return
	}
	if !endDate.After(startDate) {
		httputil.Error("endDate must be after startDate", http.StatusBadRequest).Write(w)
		return
	}

	b := &budget.Budget{
		ID:        uuid.New(),
		OwnerID:   id.UserID,
		Name:      req.Name,
		Amount:    req.Amount,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := h.budgets.Create(r.Context(), b); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create budget", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Created(map[string]any{"budget": b}).Write(w)
}

func (h *Handler) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	budgetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	b, err := h.budgets.FindByID(r.Context(), budgetID, id.UserID)
	if err != nil {
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"budget": b}).Write(w)
}

func (h *Handler) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	budgetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error("invalid request body", http.StatusBadRequest).Write(w)
		return
	}

	existing, err := h.budgets.FindByID(r.Context(), budgetID, id.UserID)
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
	if req.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			httputil.Error("invalid startDate format, expected YYYY-MM-DD", http.StatusBadRequest).Write(w)
			return
		}
		existing.StartDate = parsed
	}
	if req.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			httputil.Error("invalid endDate format, expected YYYY-MM-DD", http.StatusBadRequest).Write(w)
			return
		}
		existing.EndDate = parsed
	}
	if !existing.EndDate.After(existing.StartDate) {
		httputil.Error("endDate must be after startDate", http.StatusBadRequest).Write(w)
		return
	}

	if err := h.budgets.Update(r.Context(), existing); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update budget", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"budget": existing}).Write(w)
}

func (h *Handler) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	budgetID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.budgets.Delete(r.Context(), budgetID, id.UserID); err != nil {
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"deleted": budgetID}).Write(w)
}
