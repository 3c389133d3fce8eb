package auth_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentumhq/momentum-lambda/internal/auth"
)

const testSecret = "a-long-and-secure-secret-for-tests-only"
const testUserID = "user-123"
const testRole = "user"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		assert.Panics(t, func() { auth.Init() })
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		assert.NotPanics(t, func() { auth.Init() })
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.UserID)
		assert.Equal(t, testRole, claims.Role)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("MangledToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testUserID, testRole, time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr + "x")
		assert.Error(t, err)
	})
}

func TestClaimsContext(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		claims := &auth.Claims{UserID: testUserID, Role: testRole}
		ctx := auth.ContextWithClaims(context.Background(), claims)

		got, err := auth.GetUserClaimsFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, testUserID, got.UserID)
	})

	t.Run("EmptyContext", func(t *testing.T) {
		_, err := auth.GetUserClaimsFromContext(context.Background())
		assert.ErrorIs(t, err, auth.ErrNoClaims)
	})
}
