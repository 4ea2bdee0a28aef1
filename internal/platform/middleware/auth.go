package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	jwttoken "exptrack/internal/jwt_token"
	"exptrack/internal/platform/metrics"
	"exptrack/internal/user"
	dErrors "exptrack/pkg/domain-errors"
	"exptrack/pkg/platform/httputil"
	"exptrack/pkg/requestcontext"

	"github.com/google/uuid"
)

// TokenValidator defines the interface for validating credential tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

// UserFinder resolves a verified claim to a live account. The lookup guards
// against tokens outstanding for since-deleted accounts.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// RequireAuth converts an inbound request into either a request carrying a
// verified identity, or a short-circuited error envelope before any handler
// logic runs. No retries: verification and lookup failures are terminal for
// the request.
func RequireAuth(validator TokenValidator, users UserFinder, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				m.AuthRejections.Inc()
				logger.WarnContext(ctx, "unauthorized access - missing token", "path", r.URL.Path)
				httputil.Error("Auth token missing", http.StatusUnauthorized).Write(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				m.AuthRejections.Inc()
				logger.WarnContext(ctx, "unauthorized access - invalid token", "path", r.URL.Path, "error", err)
				httputil.FromError(err).Write(w)
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				m.AuthRejections.Inc()
				logger.WarnContext(ctx, "unauthorized access - malformed claims", "path", r.URL.Path)
				httputil.Error("invalid token claims", http.StatusUnauthorized).Write(w)
				return
			}

			// Resolve the claim against the user store rather than trusting
			// its payload: the account may have been deleted while the token
			// was still outstanding.
			u, err := users.FindByID(ctx, userID)
			if err != nil {
				if dErrors.CodeOf(err) == dErrors.CodeNotFound {
					m.AuthRejections.Inc()
					logger.WarnContext(ctx, "unauthorized access - account gone", "path", r.URL.Path, "user_id", userID)
					httputil.Error("account no longer exists", http.StatusConflict).Write(w)
					return
				}
				logger.ErrorContext(ctx, "failed to resolve identity", "path", r.URL.Path, "error", err)
				httputil.FromError(err).Write(w)
				return
			}

			ctx = requestcontext.WithIdentity(ctx, requestcontext.Identity{
				UserID: u.ID,
				Email:  u.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
