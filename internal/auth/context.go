// ABOUTME: Authenticated identity for tracking the caller through request handlers
// ABOUTME: Provides WithIdentity/FromContext for propagating auth info via context

package auth

import (
	"context"
)

// Identity holds the verified identity claim extracted from a bearer token.
// It is populated by the auth middleware and retrieved from context in handlers.
type Identity struct {
	UserID   string // ID of the authenticated user
	Username string // login name, carried in the token claim
}

// identityKey is the key type for storing Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the Identity from the context, reporting whether
// one is present.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// MustFromContext retrieves the Identity from the context, panicking if not present.
// Handlers behind the auth middleware can rely on it being set.
func MustFromContext(ctx context.Context) Identity {
	id, ok := FromContext(ctx)
	if !ok {
		panic("auth: Identity not found in context")
	}
	return id
}
