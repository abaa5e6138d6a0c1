package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/redmonkez12/offiswap/internal/logging"
	"github.com/redmonkez12/offiswap/internal/user"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrNameRequired        = errors.New("name is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
)

const minPasswordLength = 8

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Location *string
}

// Service handles authentication business logic
type Service struct {
	userRepo      UserRepository
	tokenService  TokenService
	logger        *logging.Logger
	tokenDuration time.Duration
}

func NewService(userRepo UserRepository, tokenService TokenService, logger *logging.Logger, tokenDuration time.Duration) *Service {
	return &Service{
		userRepo:      userRepo,
		tokenService:  tokenService,
		logger:        logger,
		tokenDuration: tokenDuration,
	}
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmailFormat
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	location := in.Location
	if location != nil {
		trimmed := strings.TrimSpace(*location)
		if trimmed == "" {
			location = nil
		} else {
			location = &trimmed
		}
	}

	passwordHash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.userRepo.Create(ctx, name, email, passwordHash, location)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login authenticates a user and returns a signed token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			VerifyPassword(dummyHash, password)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !VerifyPassword(existingUser.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(Identity{
		ID:    existingUser.ID,
		Email: existingUser.Email,
		Name:  existingUser.Name,
	}, s.tokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	s.logger.Debug("user logged in", "user_id", existingUser.ID.String())

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
