package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-1", "admin", testSecret, 1)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserId)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "reunion", claims.Issuer)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "user", testSecret, 1)
	assert.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateToken("user-1", "user", testSecret, 1)
	assert.NoError(t, err)

	claims, err := ValidateToken(token, testSecret, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserId)

	_, err = ValidateToken(token, testSecret, "user-2")
	assert.Error(t, err)
}
