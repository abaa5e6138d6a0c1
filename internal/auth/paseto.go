package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

// PasetoService handles PASETO token creation and validation
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	now          func() time.Time
}

// NewPasetoService creates a PASETO service. now may be nil to use the wall clock.
func NewPasetoService(symmetricKey []byte, now func() time.Time) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	if now == nil {
		now = time.Now
	}

	return &PasetoService{
		symmetricKey: key,
		now:          now,
	}, nil
}

// CreateToken generates a new PASETO v4.local token for identity
func (s *PasetoService) CreateToken(identity Identity, duration time.Duration) (string, error) {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(duration))
	token.SetString("user_id", identity.ID.String())
	token.SetString("email", identity.Email)
	token.SetString("name", identity.Name)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken decrypts a PASETO v4.local token and returns its identity
func (s *PasetoService) VerifyToken(tokenStr string) (*Identity, error) {
	parser := paseto.NewParserWithoutExpiryCheck()
	parser.AddRule(s.notExpired)

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	rawID, err := token.GetString("user_id")
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, err := token.GetString("email")
	if err != nil {
		return nil, ErrInvalidToken
	}

	name, err := token.GetString("name")
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Identity{ID: id, Email: email, Name: name}, nil
}

// notExpired is paseto.NotExpired against the service clock
func (s *PasetoService) notExpired(token paseto.Token) error {
	exp, err := token.GetExpiration()
	if err != nil {
		return err
	}
	if !s.now().Before(exp) {
		return ErrInvalidToken
	}
	return nil
}
