package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"exptrack/internal/auth"
	"exptrack/internal/budget"
	"exptrack/internal/category"
	"exptrack/internal/expense"
	jwttoken "exptrack/internal/jwt_token"
	"exptrack/internal/notification"
	"exptrack/internal/platform/metrics"
	"exptrack/internal/user"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyTrigger records alert hand-offs instead of evaluating them.
type spyTrigger struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (s *spyTrigger) Trigger(budgetID, _ uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, budgetID)
}

func (s *spyTrigger) triggered() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.calls...)
}

type apiFixture struct {
	router        http.Handler
	alerts        *spyTrigger
	budgets       *budget.MemoryStore
	expenses      *expense.MemoryStore
	notifications *notification.MemoryStore
	token         string
	userID        uuid.UUID
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	users := user.NewMemory()
	tokens := jwttoken.NewService("test-signing-key", "exptrack", time.Hour)
	f := &apiFixture{
		alerts:        &spyTrigger{},
		budgets:       budget.NewMemory(),
		expenses:      expense.NewMemory(),
		notifications: notification.NewMemory(),
	}

	f.router = NewRouter(Deps{
		Auth:          auth.NewService(users, tokens),
		Validator:     tokens,
		Users:         users,
		Budgets:       f.budgets,
		Expenses:      f.expenses,
		Categories:    category.NewMemory(),
		Notifications: f.notifications,
		Alerts:        f.alerts,
		Metrics:       metrics.New(prometheus.NewRegistry()),
		Logger:        slog.New(slog.DiscardHandler),
	})

	f.userID = uuid.New()
	require.NoError(t, users.Create(context.Background(), &user.User{
		ID:    f.userID,
		Name:  "Casey",
		Email: "casey@example.com",
	}))
	token, err := tokens.IssueToken(f.userID, "casey@example.com")
	require.NoError(t, err)
	f.token = token
	return f
}

func (f *apiFixture) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func envelopeOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/expense", "/budget", "/category", "/notification"} {
		w := f.request(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestHealthCheckIsPublic(t *testing.T) {
	f := newAPIFixture(t)
	w := f.request(t, http.MethodGet, "/health_check", nil, false)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodPost, "/user", map[string]string{
		"name":     "Robin",
		"email":    "robin@example.com",
		"password": "super-secret",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	body := envelopeOf(t, w)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["token"])

	w = f.request(t, http.MethodPost, "/user/login", map[string]string{
		"email":    "robin@example.com",
		"password": "super-secret",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodPost, "/user/login", map[string]string{
		"email":    "robin@example.com",
		"password": "wrong-password",
	}, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateExpenseTriggersAlertEvaluation(t *testing.T) {
	f := newAPIFixture(t)
	budgetID := uuid.New()
	require.NoError(t, f.budgets.Create(context.Background(), &budget.Budget{
		ID:        budgetID,
		OwnerID:   f.userID,
		Name:      "Groceries",
		Amount:    1000,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}))

	w := f.request(t, http.MethodPost, "/expense", map[string]any{
		"name":      "Weekly shop",
		"amount":    850,
		"date":      "2026-08-20",
		"budget_id": budgetID.String(),
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Equal(t, []uuid.UUID{budgetID}, f.alerts.triggered())
}

func TestCreateExpenseWithoutBudgetDoesNotTrigger(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodPost, "/expense", map[string]any{
		"name":   "Coffee",
		"amount": 450,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, f.alerts.triggered())
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"short name", map[string]any{"name": "x", "amount": 100}, "name min length 2"},
		{"zero amount", map[string]any{"name": "Coffee", "amount": 0}, "amount must be positive"},
		{"bad date", map[string]any{"name": "Coffee", "amount": 100, "date": "20-08-2026"}, "invalid date format, expected YYYY-MM-DD"},
		{"bad budget id", map[string]any{"name": "Coffee", "amount": 100, "budget_id": "nope"}, "invalid budget_id format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			w := f.request(t, http.MethodPost, "/expense", tt.body, true)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, envelopeOf(t, w)["message"])
			assert.Empty(t, f.alerts.triggered())
		})
	}
}

func TestCreateExpenseRejectsForeignBudget(t *testing.T) {
	f := newAPIFixture(t)
	victimID := uuid.New()
	victimBudget := uuid.New()
	require.NoError(t, f.budgets.Create(context.Background(), &budget.Budget{
		ID:        victimBudget,
		OwnerID:   victimID,
		Name:      "Groceries",
		Amount:    1000,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}))
	require.NoError(t, f.expenses.Create(context.Background(), &expense.Expense{
		ID:       uuid.New(),
		OwnerID:  victimID,
		Name:     "Victim spend",
		Amount:   100,
		Date:     time.Now(),
		BudgetID: &victimBudget,
	}))

	// The caller references a budget they do not own. The write must fail
	// before it can inflate the owner's spend aggregate.
	w := f.request(t, http.MethodPost, "/expense", map[string]any{
		"name":      "Poison pill",
		"amount":    900,
		"budget_id": victimBudget.String(),
	}, true)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	assert.Empty(t, f.alerts.triggered())

	total, err := f.expenses.AggregateSpendForBudget(context.Background(), victimBudget)
	require.NoError(t, err)
	assert.Equal(t, int64(100), total)
}

func TestUpdateExpenseRejectsForeignBudget(t *testing.T) {
	f := newAPIFixture(t)
	foreignBudget := uuid.New()
	require.NoError(t, f.budgets.Create(context.Background(), &budget.Budget{
		ID:        foreignBudget,
		OwnerID:   uuid.New(),
		Name:      "Groceries",
		Amount:    1000,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
	}))
	expenseID := uuid.New()
	require.NoError(t, f.expenses.Create(context.Background(), &expense.Expense{
		ID:      expenseID,
		OwnerID: f.userID,
		Name:    "Coffee",
		Amount:  450,
		Date:    time.Now(),
	}))

	w := f.request(t, http.MethodPut, "/expense/"+expenseID.String(), map[string]any{
		"budget_id": foreignBudget.String(),
	}, true)
	require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	unchanged, err := f.expenses.FindByID(context.Background(), expenseID, f.userID)
	require.NoError(t, err)
	assert.Nil(t, unchanged.BudgetID)
}

func TestExpenseOwnershipEnforced(t *testing.T) {
	f := newAPIFixture(t)
	otherOwner := uuid.New()
	foreignID := uuid.New()
	require.NoError(t, f.expenses.Create(context.Background(), &expense.Expense{
		ID:      foreignID,
		OwnerID: otherOwner,
		Name:    "Not yours",
		Amount:  100,
		Date:    time.Now(),
	}))

	w := f.request(t, http.MethodGet, "/expense/"+foreignID.String(), nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpenseMalformedIDIsBadRequest(t *testing.T) {
	f := newAPIFixture(t)
	w := f.request(t, http.MethodGet, "/expense/not-a-uuid", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBudgetCRUD(t *testing.T) {
	f := newAPIFixture(t)

	w := f.request(t, http.MethodPost, "/budget", map[string]any{
		"name":      "Groceries",
		"amount":    1000,
		"startDate": "2026-08-01",
		"endDate":   "2026-09-01",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := envelopeOf(t, w)["data"].(map[string]any)
	created := data["budget"].(map[string]any)
	budgetID := created["budget_id"].(string)

	w = f.request(t, http.MethodGet, "/budget/"+budgetID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodPut, "/budget/"+budgetID, map[string]any{"amount": 2000}, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodDelete, "/budget/"+budgetID, nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w = f.request(t, http.MethodGet, "/budget/"+budgetID, nil, true)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestBudgetRejectsInvertedDates(t *testing.T) {
	f := newAPIFixture(t)
	w := f.request(t, http.MethodPost, "/budget", map[string]any{
		"name":      "Backwards",
		"amount":    1000,
		"startDate": "2026-09-01",
		"endDate":   "2026-08-01",
	}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "endDate must be after startDate", envelopeOf(t, w)["message"])
}

func TestNotificationsReturnedOnceThenMarkedSent(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	require.NoError(t, f.notifications.Insert(ctx, f.userID, "Budget Alert", "message one"))
	require.NoError(t, f.notifications.Insert(ctx, f.userID, "Budget Alert", "message two"))

	w := f.request(t, http.MethodGet, "/notification", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	data := envelopeOf(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["count"])

	// A second poll sees nothing: the first one marked everything sent.
	w = f.request(t, http.MethodGet, "/notification", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	data = envelopeOf(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(0), data["count"])
}
