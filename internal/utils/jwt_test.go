// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetJWTSecret("round-trip-secret")
	userID := uuid.New()

	token, err := GenerateJWT(userID, "healthnut", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "healthnut", claims.Username)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateJWTExpired(t *testing.T) {
	SetJWTSecret("round-trip-secret")

	token, err := GenerateJWT(uuid.New(), "healthnut", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	token, err := GenerateJWT(uuid.New(), "healthnut", 1)
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	SetJWTSecret("round-trip-secret")

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
