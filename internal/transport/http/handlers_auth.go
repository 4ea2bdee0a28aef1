package httptransport

import (
	"encoding/json"
	"net/http"

	"exptrack/internal/auth"
	"exptrack/pkg/platform/httputil"
)

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error("invalid request body", http.StatusBadRequest).Write(w)
		return
	}

	res, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.logger.WarnContext(r.Context(), "registration failed", "error", err)
		httputil.FromError(err).Write(w)
		return
	}

	// Registration answers 200 rather than 201: existing clients treat the
	// register and login responses identically.
	httputil.Success(res).Write(w)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error("invalid request body", http.StatusBadRequest).Write(w)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "login failed", "email", req.Email, "error", err)
		httputil.FromError(err).Write(w)
		return
	}

	httputil.Success(res).Write(w)
}
