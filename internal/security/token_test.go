package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken(42, "+254700000001")
	require.NoError(t, err)
	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "+254700000001", claims.Phone)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	refresh, err := m.GenerateRefreshToken(42, "+254700000001")
	require.NoError(t, err)
	claims, err = m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestRequireType(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken(42, "+254700000001")
	require.NoError(t, err)
	claims, err := m.ValidateToken(access)
	require.NoError(t, err)

	assert.NoError(t, claims.RequireType(TokenTypeAccess))
	assert.ErrorIs(t, claims.RequireType(TokenTypeRefresh), ErrWrongTokenType)
}

func TestTokenValidationFailures(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour, 24*time.Hour)
	other := NewTokenManager("other-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateAccessToken(1, "")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
	_, err = m.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, -time.Minute)

	token, err := m.GenerateAccessToken(1, "")
	require.NoError(t, err)
	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
