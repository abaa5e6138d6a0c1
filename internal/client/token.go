package client

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpiryUnknown means the token carries no readable expiry, as with
// encrypted PASETO tokens
var ErrExpiryUnknown = errors.New("token expiry cannot be read")

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The result is advisory only; the server decides whether a token is valid.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrExpiryUnknown
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrExpiryUnknown
	}
	return claims.ExpiresAt.Time, nil
}

// LooksExpired reports whether the token's exp is at or before now.
// Tokens whose expiry cannot be read are not reported as expired.
func LooksExpired(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return !now.Before(exp)
}
