package core

import (
	"context"

	"github.com/signedtoken/jwtauth/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	identityKey contextKey = iota
)

// GetIdentity retrieves the authenticated identity stored by SetIdentity.
func GetIdentity(ctx context.Context) (token.Claims, error) {
	identity, ok := ctx.Value(identityKey).(token.Claims)
	if !ok || identity == nil {
		return nil, ErrIdentityNotFound
	}
	return identity, nil
}

// SetIdentity stores identity in the context.
// Adapters call it after a successful check.
func SetIdentity(ctx context.Context, identity token.Claims) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// HasIdentity checks if an identity exists in the context without retrieving it.
func HasIdentity(ctx context.Context) bool {
	_, err := GetIdentity(ctx)
	return err == nil
}
