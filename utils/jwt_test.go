package utils

import (
	"testing"

	"campfinder/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtract(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1

	token, err := GenerateToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	sub, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", sub)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = 1

	token, err := GenerateToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "different-secret"
	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.JWTExpireHours = -1

	token, err := GenerateToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenIsStableHex(t *testing.T) {
	first := HashToken("raw-token")
	second := HashToken("raw-token")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, HashToken("other-token"))
}
