package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough-for-hs256",
		AccessTokenExpiration: time.Hour,
		Issuer:                "kiosk-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	tenantID, userID := uuid.New(), uuid.New()

	token, err := svc.GenerateAccessToken(GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Username: "yamada",
		Role:     "staff",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "yamada", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.ID)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)
	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Greater(t, claims.GetRemainingTTL(), 59*time.Minute)
}

func TestJWTService_ValidateAccessToken_Errors(t *testing.T) {
	svc := newTestJWTService()
	input := GenerateTokenInput{TenantID: uuid.New(), UserID: uuid.New(), Username: "u", Role: "admin"}

	t.Run("expired", func(t *testing.T) {
		past := newTestJWTService()
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.GenerateAccessToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret", AccessTokenExpiration: time.Hour, Issuer: "kiosk-test"})
		token, err := other.GenerateAccessToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "test-secret-key-that-is-long-enough-for-hs256", AccessTokenExpiration: time.Hour, Issuer: "someone-else"})
		token, err := other.GenerateAccessToken(input)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "kiosk-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			TenantID: uuid.NewString(),
			UserID:   uuid.NewString(),
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing tenant", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "kiosk-test",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: uuid.NewString(),
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(raw)
		assert.ErrorIs(t, err, ErrMissingTenantID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
