package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidate(t *testing.T) {
	userID := uuid.New()
	token, err := GenerateToken(secret, "sess-1", userID, "admin", "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejectsExpired(t *testing.T) {
	token, err := GenerateToken(secret, "sess-1", uuid.New(), "u", "staff", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = ValidateToken(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, "sess-1", uuid.New(), "u", "staff", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateToken([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissing(t *testing.T) {
	_, err := ValidateToken(secret, "")
	assert.ErrorIs(t, err, ErrMissingToken)
}
