package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtClaims nests the identity under "user", the shape the web client decodes
type jwtClaims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 tokens
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a JWT service. now may be nil to use the wall clock.
func NewJWTService(secret []byte, now func() time.Time) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	if now == nil {
		now = time.Now
	}
	return &JWTService{secret: secret, now: now}, nil
}

// CreateToken signs identity with an expiry of now+duration
func (s *JWTService) CreateToken(identity Identity, duration time.Duration) (string, error) {
	now := s.now()

	claims := jwtClaims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken checks signature and expiry and returns the embedded identity
func (s *JWTService) VerifyToken(tokenStr string) (*Identity, error) {
	claims := &jwtClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.User.ID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	identity := claims.User
	return &identity, nil
}
