package auth

import (
	"context"
	"time"

	"github.com/redmonkez12/offiswap/internal/user"
)

// TokenService defines the interface for token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(identity Identity, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*Identity, error)
}

// UserRepository is the credential store used by the auth service
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string, location *string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// RateLimiter counts attempts per key within a window
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
