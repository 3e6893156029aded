// Package auth provides bearer-token authentication for FleetRent.
package auth

import (
	"context"

	"github.com/fleetrent/fleetrent/internal/domain"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// identityKey is the context key under which the authenticated user is stored.
const identityKey contextKey = "auth.identity"

// Identity describes the authenticated caller of a request.
type Identity struct {
	// User is the authenticated user.
	User *domain.User

	// TokenKey is the bearer token that authenticated the request.
	TokenKey string
}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the identity from the context, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// RequireIdentity retrieves the identity or fails.
// Handlers behind the middleware can rely on it being present.
func RequireIdentity(ctx context.Context) (*Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id == nil || id.User == nil {
		return nil, ErrNoIdentity
	}
	return id, nil
}
