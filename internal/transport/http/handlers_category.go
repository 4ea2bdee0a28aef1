package httptransport

import (
	"encoding/json"
	"net/http"

	"exptrack/internal/category"
	"exptrack/pkg/platform/httputil"

	"github.com/google/uuid"
)

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	categories, err := h.categories.ListForOwner(r.Context(), id.UserID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list categories", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"categories": categories}).Write(w)
}

func (h *Handler) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error("invalid request body", http.StatusBadRequest).Write(w)
		return
	}
	if len(req.Name) < 2 {
		httputil.Error("name min length 2", http.StatusBadRequest).Write(w)
		return
	}

	ownerID := id.UserID
	c := &category.Category{
		ID:      uuid.New(),
		OwnerID: &ownerID,
		Name:    req.Name,
	}
	if err := h.categories.Create(r.Context(), c); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to create category", "error", err)
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Created(map[string]any{"category": c}).Write(w)
}

func (h *Handler) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.categories.Delete(r.Context(), categoryID, id.UserID); err != nil {
		httputil.FromError(err).Write(w)
		return
	}
	httputil.Success(map[string]any{"deleted": categoryID}).Write(w)
}
