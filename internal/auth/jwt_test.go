package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret")

	signed, err := tokens.GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-a").GenerateToken(7)
	require.NoError(t, err)

	_, err = NewTokens("secret-b").ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokens("test-secret").ValidateToken("not.a.token")
	assert.Error(t, err)
}
