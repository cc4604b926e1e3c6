package middleware

import (
	"lms/config"
	"lms/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	token, err := GenerateAccessToken(42, models.RoleInstructor)
	require.NoError(t, err)

	claims, err := ParseToken(token, "access")
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, models.RoleInstructor, claims["role"])

	// An access token must not pass as a refresh token
	_, err = ParseToken(token, "refresh")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	token, err := GenerateRefreshToken(7, models.RoleStudent)
	require.NoError(t, err)

	claims, err := ParseToken(token, "refresh")
	require.NoError(t, err)
	assert.Equal(t, float64(7), claims["userId"])

	// Signed with a different key
	config.AppConfig.JWTKey = "other-secret"
	_, err = ParseToken(token, "refresh")
	assert.Error(t, err)

	config.AppConfig.JWTKey = "test-secret"
	_, err = ParseToken(token+"x", "refresh")
	assert.Error(t, err)
}
