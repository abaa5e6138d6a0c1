package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike
var ErrInvalidToken = errors.New("invalid token")

// Identity is the claim set carried by a token: who is acting
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying identity
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the acting identity attached by RequireAuth
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}
