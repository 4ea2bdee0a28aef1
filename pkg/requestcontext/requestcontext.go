// Package requestcontext provides HTTP-independent accessors for
// request-scoped values.
//
// The auth middleware sets the authenticated identity here; handlers and
// services read it back without importing net/http. Tests inject a synthetic
// identity with WithIdentity instead of going through the auth gate.
package requestcontext

import (
	"context"

	"github.com/google/uuid"
)

// Identity is the authenticated principal attached to a request. It is
// resolved once by the auth middleware and never mutated afterwards.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

type identityKey struct{}

// ContextKeyIdentity is exported for tests that need raw context.WithValue.
var ContextKeyIdentity = identityKey{}

// WithIdentity injects the authenticated identity into the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ContextKeyIdentity, id)
}

// IdentityFrom retrieves the authenticated identity from the context.
// The second return value is false when no identity was attached.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ContextKeyIdentity).(Identity)
	return id, ok
}
