// Package authctx propagates the verified request principal through
// context.Context. The bearer-token middleware stores the principal; handlers
// retrieve it. No other writer exists.
package authctx

import (
	"context"
	"errors"
)

// Principal is the verified identity extracted from a valid token. It is the
// only input to ownership decisions.
type Principal struct {
	// ID is the account id asserted by the token subject.
	ID string
	// Username is the username claim, when present.
	Username string
}

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// ErrNoPrincipal is returned when no principal is stored in the context.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// Set stores the principal in the context.
func Set(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context.
func Get(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// MustGet retrieves the principal, panicking if absent. Use only in handlers
// that run strictly behind the authentication middleware.
func MustGet(ctx context.Context) Principal {
	p, ok := Get(ctx)
	if !ok {
		panic("authctx: principal not found in context")
	}
	return p
}

// GetOrError retrieves the principal, returning ErrNoPrincipal if absent.
func GetOrError(ctx context.Context) (Principal, error) {
	p, ok := Get(ctx)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}
