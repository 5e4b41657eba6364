package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplecore/attendance-backend-go/internal/domain/employee"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

func newTestService() Service {
	return NewJWTService(testSecret, testAccessExp, testRefreshExp)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken(42, "user@example.com", employee.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, ok := token.Get("user_id")
	require.True(t, ok)
	assert.Equal(t, "42", userID)

	email, _ := token.Get("email")
	assert.Equal(t, "user@example.com", email)

	role, _ := token.Get("role")
	assert.Equal(t, "manager", role)

	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestParseRefreshToken_RoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestParseRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken(7, "user@example.com", employee.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestParseRefreshToken_RejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ParseRefreshToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestParseRefreshToken_RejectsRevoked(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	svc.RevokeToken(tokenString)

	_, err = svc.ParseRefreshToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}

func TestParseRefreshToken_RejectsWrongSecret(t *testing.T) {
	other := NewJWTService("some-other-secret", testAccessExp, testRefreshExp)

	tokenString, _, err := other.GenerateRefreshToken(7)
	require.NoError(t, err)

	svc := newTestService()
	_, err = svc.ParseRefreshToken(tokenString)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("token-value", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.Equal(t, time.Unix(expiresAt, 0), cookie.Expires)
}
