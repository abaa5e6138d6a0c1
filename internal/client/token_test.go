package client

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/offiswap/internal/auth"
)

func TestTokenExpiry(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, err := auth.NewJWTService([]byte("secret"), func() time.Time { return issued })
	require.NoError(t, err)

	token, err := svc.CreateToken(auth.Identity{ID: uuid.New(), Email: "a@b.test", Name: "A"}, time.Hour)
	require.NoError(t, err)

	exp, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, issued.Add(time.Hour).Equal(exp))

	assert.False(t, LooksExpired(token, issued.Add(59*time.Minute)))
	assert.True(t, LooksExpired(token, issued.Add(time.Hour+time.Second)))
}

func TestTokenExpiry_Unreadable(t *testing.T) {
	_, err := TokenExpiry("v4.local.opaque")
	assert.ErrorIs(t, err, ErrExpiryUnknown)
	assert.False(t, LooksExpired("v4.local.opaque", time.Now()))
}
