package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrsLondon/vivahub-api/config"
	"github.com/MrsLondon/vivahub-api/internal/model"
)

func testService() JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryHours:        1,
		RefreshExpiryHours: 24,
	})
}

func testUser() *model.User {
	u := &model.User{
		Email: "customer@example.com",
		Role:  model.UserRoleCustomer,
	}
	u.ID = uuid.New()
	return u
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.UserRoleCustomer, claims.Role)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	svc := testService()
	user := testUser()

	refresh, err := svc.GenerateRefreshToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := testService()

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
