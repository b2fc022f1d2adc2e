package jwt

import (
	"testing"
	"time"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() JWTService {
	return &jwtService{secretKey: "test-secret", issuer: "FOODGRAM"}
}

func TestUserTokenRoundTrip(t *testing.T) {
	svc := testService()

	token := svc.GenerateTokenUser("user-123", domain.RoleUser)
	require.NotEmpty(t, token)

	userID, role, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
	assert.Equal(t, domain.RoleUser, role)
}

func TestGetUserIDByTokenRejectsGarbage(t *testing.T) {
	_, _, err := testService().GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGetUserIDByTokenRejectsWrongKey(t *testing.T) {
	token := testService().GenerateTokenUser("user-123", domain.RoleUser)

	other := &jwtService{secretKey: "other-secret", issuer: "FOODGRAM"}
	_, _, err := other.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestResetPasswordTokenRoundTrip(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateTokenResetPassword(map[string]any{"user_id": "user-123"}, 30*time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateTokenResetPassword(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
}

func TestResetPasswordTokenExpires(t *testing.T) {
	svc := testService()

	token, err := svc.GenerateTokenResetPassword(map[string]any{"user_id": "user-123"}, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateTokenResetPassword(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}
