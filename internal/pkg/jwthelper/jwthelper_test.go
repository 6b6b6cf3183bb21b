package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	signingKey := []byte("test-signing-key")

	t.Run("generated token parses back to the same claims", func(t *testing.T) {
		token, err := GenerateToken(signingKey, "organiser@example.org", "curl/8.0")
		require.NoError(t, err)

		claims, err := ParseToken(signingKey, token)

		require.NoError(t, err)
		assert.Equal(t, "organiser@example.org", claims.Email)
		assert.Equal(t, "curl/8.0", claims.UserAgent)
	})

	t.Run("wrong signing key is rejected", func(t *testing.T) {
		token, err := GenerateToken(signingKey, "organiser@example.org", "curl/8.0")
		require.NoError(t, err)

		_, err = ParseToken([]byte("another-key"), token)

		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := ParseToken(signingKey, "not-a-token")

		assert.Error(t, err)
	})
}
