package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateRefreshToken(7)
	require.NoError(t, err)

	userID, err := manager.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestTokenTypeMismatch(t *testing.T) {
	manager := newTestManager()

	refresh, err := manager.GenerateRefreshToken(1)
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	access, err := manager.GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = manager.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute, -time.Minute)

	token, err := manager.GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	token, err := newTestManager().GenerateAccessToken(1)
	require.NoError(t, err)

	other := NewManager("different-secret", 15*time.Minute, time.Hour)

	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestMalformedToken(t *testing.T) {
	_, err := newTestManager().VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
