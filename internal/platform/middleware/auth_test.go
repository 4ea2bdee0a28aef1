package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwttoken "exptrack/internal/jwt_token"
	"exptrack/internal/platform/metrics"
	"exptrack/internal/user"
	"exptrack/pkg/requestcontext"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	users    *user.MemoryStore
	tokens   *jwttoken.Service
	handler  func(http.Handler) http.Handler
	userID   uuid.UUID
	email    string
	token    string
	invoked  bool
	identity requestcontext.Identity
	hasID    bool
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	f := &gateFixture{
		users:  user.NewMemory(),
		tokens: jwttoken.NewService("test-signing-key", "exptrack", time.Hour),
		userID: uuid.New(),
		email:  "casey@example.com",
	}
	require.NoError(t, f.users.Create(context.Background(), &user.User{
		ID:    f.userID,
		Name:  "Casey",
		Email: f.email,
	}))

	token, err := f.tokens.IssueToken(f.userID, f.email)
	require.NoError(t, err)
	f.token = token

	m := metrics.New(prometheus.NewRegistry())
	f.handler = RequireAuth(f.tokens, f.users, m, slog.New(slog.DiscardHandler))
	return f
}

// spy returns a downstream handler that records whether it ran and what
// identity it observed.
func (f *gateFixture) spy() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.invoked = true
		f.identity, f.hasID = requestcontext.IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func (f *gateFixture) do(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/expense", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	f.handler(f.spy()).ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	f := newGateFixture(t)
	w := f.do(t, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, f.invoked, "downstream handler must never run")

	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Auth token missing", body["message"])
	assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	f := newGateFixture(t)
	w := f.do(t, "Basic "+f.token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, f.invoked)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	f := newGateFixture(t)
	w := f.do(t, "Bearer not-a-token")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, f.invoked)
	assert.Equal(t, "invalid token", decodeEnvelope(t, w)["message"])
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	f := newGateFixture(t)
	expired := jwttoken.NewService("test-signing-key", "exptrack", -time.Hour)
	token, err := expired.IssueToken(f.userID, f.email)
	require.NoError(t, err)

	w := f.do(t, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, f.invoked)
	assert.Equal(t, "token has expired", decodeEnvelope(t, w)["message"])
}

func TestRequireAuth_DeletedAccount(t *testing.T) {
	f := newGateFixture(t)
	f.users.Delete(context.Background(), f.userID)

	w := f.do(t, "Bearer "+f.token)

	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, f.invoked)
	assert.Equal(t, "account no longer exists", decodeEnvelope(t, w)["message"])
}

func TestRequireAuth_Success(t *testing.T) {
	f := newGateFixture(t)
	w := f.do(t, "Bearer "+f.token)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, f.invoked)
	require.True(t, f.hasID, "identity must be attached to the context")
	assert.Equal(t, f.userID, f.identity.UserID)
	assert.Equal(t, f.email, f.identity.Email)
}
