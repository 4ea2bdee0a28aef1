// Package httptransport is the thin HTTP layer. It delegates to domain
// services and stores without embedding business logic, and speaks the JSON
// result envelope on every route.
package httptransport

import (
	"log/slog"
	"net/http"

	"exptrack/internal/auth"
	"exptrack/internal/budget"
	"exptrack/internal/category"
	"exptrack/internal/expense"
	"exptrack/internal/notification"
	"exptrack/internal/platform/metrics"
	"exptrack/internal/platform/middleware"
	"exptrack/internal/user"
	"exptrack/pkg/platform/httputil"
	"exptrack/pkg/requestcontext"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AlertTrigger is the fire-and-forget hook into the budget alert engine.
type AlertTrigger interface {
	Trigger(budgetID, ownerID uuid.UUID)
}

// Handler wires all endpoints to their collaborators.
type Handler struct {
	auth          *auth.Service
	users         user.Store
	budgets       budget.Store
	expenses      expense.Store
	categories    category.Store
	notifications notification.Store
	alerts        AlertTrigger
	logger        *slog.Logger
}

// Deps collects everything the router needs.
type Deps struct {
	Auth          *auth.Service
	Validator     middleware.TokenValidator
	Users         user.Store
	Budgets       budget.Store
	Expenses      expense.Store
	Categories    category.Store
	Notifications notification.Store
	Alerts        AlertTrigger
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
}

// NewRouter mounts every endpoint. Registration and login stay public;
// everything else sits behind the auth gate.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		auth:          d.Auth,
		users:         d.Users,
		budgets:       d.Budgets,
		expenses:      d.Expenses,
		categories:    d.Categories,
		notifications: d.Notifications,
		alerts:        d.Alerts,
		logger:        d.Logger,
	}

	r := chi.NewRouter()

	r.Get("/health_check", h.handleHealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/user", h.handleRegister)
	r.Post("/user/login", h.handleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(d.Validator, d.Users, d.Metrics, d.Logger))

		pr.Get("/expense", h.handleListExpenses)
		pr.Post("/expense", h.handleCreateExpense)
		pr.Get("/expense/{id}", h.handleGetExpense)
		pr.Put("/expense/{id}", h.handleUpdateExpense)
		pr.Delete("/expense/{id}", h.handleDeleteExpense)
		pr.Get("/expenses/budget/{budget_id}", h.handleListExpensesByBudget)

		pr.Get("/budget", h.handleListBudgets)
		pr.Post("/budget", h.handleCreateBudget)
		pr.Get("/budget/{id}", h.handleGetBudget)
		pr.Put("/budget/{id}", h.handleUpdateBudget)
		pr.Delete("/budget/{id}", h.handleDeleteBudget)

		pr.Get("/category", h.handleListCategories)
		pr.Post("/category", h.handleCreateCategory)
		pr.Delete("/category/{id}", h.handleDeleteCategory)

		pr.Get("/notification", h.handleListNotifications)
	})

	return r
}

func (h *Handler) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	httputil.Success(map[string]string{"status": "ok"}).Write(w)
}

// identity pulls the authenticated principal out of the context. Behind the
// auth gate it is always present; the guard covers misuse in tests.
func identity(w http.ResponseWriter, r *http.Request) (requestcontext.Identity, bool) {
	id, ok := requestcontext.IdentityFrom(r.Context())
	if !ok {
		httputil.Error("authentication required", http.StatusUnauthorized).Write(w)
		return requestcontext.Identity{}, false
	}
	return id, true
}

// pathUUID parses a UUID route parameter, answering 400 on malformed input.
func pathUUID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		httputil.Error("invalid "+param+" format", http.StatusBadRequest).Write(w)
		return uuid.Nil, false
	}
	return id, true
}
