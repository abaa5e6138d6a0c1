package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/logging"
	"github.com/redmonkez12/offiswap/internal/memstore"
	"github.com/redmonkez12/offiswap/internal/user"
)

func newAuthService(t *testing.T) (*auth.Service, *auth.JWTService) {
	t.Helper()
	tokens, err := auth.NewJWTService([]byte("test-secret"), nil)
	require.NoError(t, err)
	return auth.NewService(memstore.New().Users(), tokens, logging.NewNop(), time.Hour), tokens
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	loc := " Berlin "
	u, err := svc.Register(ctx, auth.RegisterInput{Name: "Acme", Email: " Ops@Acme.test ", Password: "password1", Location: &loc})
	require.NoError(t, err)

	assert.Equal(t, "ops@acme.test", u.Email)
	assert.Equal(t, "Acme", u.Name)
	require.NotNil(t, u.Location)
	assert.Equal(t, "Berlin", *u.Location)
	assert.NotEqual(t, "password1", u.PasswordHash)
	assert.True(t, auth.VerifyPassword(u.PasswordHash, "password1"))
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Name: "Acme", Email: "ops@acme.test", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterInput{Name: "Other", Email: "OPS@acme.test", Password: "password2"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	tests := []struct {
		name string
		in   auth.RegisterInput
		want error
	}{
		{"no name", auth.RegisterInput{Email: "a@b.test", Password: "password1"}, auth.ErrNameRequired},
		{"no email", auth.RegisterInput{Name: "A", Password: "password1"}, auth.ErrEmailRequired},
		{"bad email", auth.RegisterInput{Name: "A", Email: "not-an-email", Password: "password1"}, auth.ErrInvalidEmailFormat},
		{"display name email", auth.RegisterInput{Name: "A", Email: "A <a@b.test>", Password: "password1"}, auth.ErrInvalidEmailFormat},
		{"no password", auth.RegisterInput{Name: "A", Email: "a@b.test"}, auth.ErrPasswordRequired},
		{"short password", auth.RegisterInput{Name: "A", Email: "a@b.test", Password: "short"}, auth.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, tokens := newAuthService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, auth.RegisterInput{Name: "Acme", Email: "ops@acme.test", Password: "password1"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "OPS@acme.test", "password1")
	require.NoError(t, err)

	identity, err := tokens.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{ID: u.ID, Email: "ops@acme.test", Name: "Acme"}, *identity)
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterInput{Name: "Acme", Email: "ops@acme.test", Password: "password1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ops@acme.test", "password2")
	_, unknownEmail := svc.Login(ctx, "nobody@acme.test", "password1")

	require.ErrorIs(t, wrongPassword, auth.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, auth.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "", "password1")
	assert.ErrorIs(t, err, auth.ErrCredentialsRequired)

	_, err = svc.Login(context.Background(), "ops@acme.test", "")
	assert.ErrorIs(t, err, auth.ErrCredentialsRequired)
}

type failingUsers struct{}

func (failingUsers) Create(context.Context, string, string, string, *string) (*user.User, error) {
	return nil, errors.New("db down")
}

func (failingUsers) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, errors.New("db down")
}

func TestLogin_StoreFailureIsNotCredentialError(t *testing.T) {
	tokens, err := auth.NewJWTService([]byte("test-secret"), nil)
	require.NoError(t, err)
	svc := auth.NewService(failingUsers{}, tokens, logging.NewNop(), time.Hour)

	_, err = svc.Login(context.Background(), "ops@acme.test", "password1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}
