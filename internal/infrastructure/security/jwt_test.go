package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.True(t, IsAdmin(claims))
}

func TestGenerateAdminTokenRequiresSecret(t *testing.T) {
	_, err := GenerateAdminToken("", time.Hour)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateAdminToken("test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "test-secret")
	assert.Error(t, err)
}

func TestIsAdmin(t *testing.T) {
	assert.False(t, IsAdmin(jwt.MapClaims{}))
	assert.False(t, IsAdmin(jwt.MapClaims{"role": "viewer"}))
	assert.True(t, IsAdmin(jwt.MapClaims{"role": "admin"}))
}
