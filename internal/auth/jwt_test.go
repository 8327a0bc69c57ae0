package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	mgr := NewJWTManager("test-secret", time.Minute)

	t.Run("round trip", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken("user-123", "guide")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := mgr.ParseAndValidate(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "guide", claims.Role)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Minute)
		token, err := other.GenerateAccessToken("user-123", "user")
		require.NoError(t, err)

		_, err = mgr.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.GenerateAccessToken("user-123", "user")
		require.NoError(t, err)

		_, err = mgr.ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := mgr.ParseAndValidate("not.a.token")
		assert.Error(t, err)
	})
}
