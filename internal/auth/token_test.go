package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	token, err := NewToken(42, "ana@test.com", "owner", "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "ana@test.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewToken(1, "ana@test.com", "client", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "otro-secreto")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := NewToken(1, "ana@test.com", "client", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestTokenEmptySecret(t *testing.T) {
	_, err := NewToken(1, "ana@test.com", "client", "", time.Hour)
	assert.Error(t, err)
}
