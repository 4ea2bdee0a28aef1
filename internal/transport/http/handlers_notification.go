package httptransport

import (
	"net/http"

	"exptrack/pkg/platform/httputil"

	"github.com/google/uuid"
)

// handleListNotifications returns the caller's unsent notifications and
// marks them sent, so a polling client renders each alert exactly once.
func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	unsent, err := h.notifications.ListUnsent(r.Context(), id.UserID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list notifications", "error", err)
		httputil.FromError(err).Write(w)
		return
	}

	if len(unsent) > 0 {
		ids := make([]uuid.UUID, len(unsent))
		for i, n := range unsent {
			ids[i] = n.ID
		}
		if err := h.notifications.MarkSent(r.Context(), ids); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to mark notifications sent", "error", err)
			httputil.FromError(err).Write(w)
			return
		}
	}

	httputil.Success(map[string]any{
		"count":         len(unsent),
		"notifications": unsent,
	}).Write(w)
}
