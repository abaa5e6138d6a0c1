package auth

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPasetoKey(b byte) []byte {
	return bytes.Repeat([]byte{b}, 32)
}

func TestNewPasetoService_KeyLength(t *testing.T) {
	_, err := NewPasetoService([]byte("short"), nil)
	assert.Error(t, err)
}

func TestPasetoService_RoundTrip(t *testing.T) {
	c := newClock()
	svc, err := NewPasetoService(testPasetoKey(1), c.Now)
	require.NoError(t, err)

	id := testIdentity()
	token, err := svc.CreateToken(id, time.Hour)
	require.NoError(t, err)
	assert.Contains(t, token, "v4.local.")

	got, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, *got)
}

func TestPasetoService_Expiry(t *testing.T) {
	c := newClock()
	svc, err := NewPasetoService(testPasetoKey(1), c.Now)
	require.NoError(t, err)

	token, err := svc.CreateToken(testIdentity(), time.Hour)
	require.NoError(t, err)

	c.Advance(time.Hour + time.Second)
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasetoService_WrongKey(t *testing.T) {
	c := newClock()
	issuer, err := NewPasetoService(testPasetoKey(1), c.Now)
	require.NoError(t, err)
	verifier, err := NewPasetoService(testPasetoKey(2), c.Now)
	require.NoError(t, err)

	token, err := issuer.CreateToken(testIdentity(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.VerifyToken("v4.local.garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
