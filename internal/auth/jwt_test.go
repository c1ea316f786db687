package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/auth"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/config"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
)

func newTokenManager(duration time.Duration) *auth.TokenManager {
	return auth.NewTokenManager(config.Auth{
		JWTSecret:     "test-secret",
		TokenDuration: duration,
		Issuer:        "electronics-store-api",
	})
}

func TestTokenManager(t *testing.T) {
	user := model.User{ID: uuid.New(), Role: model.RoleCustomer}

	t.Run("Should verify a token it issued", func(t *testing.T) {
		manager := newTokenManager(time.Hour)

		token, err := manager.GenerateToken(user)
		require.NoError(t, err)

		userID, err := manager.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		manager := newTokenManager(-time.Minute)

		token, err := manager.GenerateToken(user)
		require.NoError(t, err)

		_, err = manager.VerifyToken(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := auth.NewTokenManager(config.Auth{
			JWTSecret:     "other-secret",
			TokenDuration: time.Hour,
			Issuer:        "electronics-store-api",
		})

		token, err := other.GenerateToken(user)
		require.NoError(t, err)

		_, err = newTokenManager(time.Hour).VerifyToken(token)
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := newTokenManager(time.Hour).VerifyToken("definitely.not.jwt")
		require.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
