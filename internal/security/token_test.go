package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, err := manager.GenerateToken(7, 1, "jane@example.com", []string{RoleMember}, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, int32(1), claims.AccountID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.False(t, claims.IsAdmin())
}

func TestTokenManager_AdminRole(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, err := manager.GenerateToken(7, 0, "staff@example.com", []string{RoleAdmin, RoleMember}, time.Hour)
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	assert.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").GenerateToken(7, 1, "jane@example.com", []string{RoleMember}, time.Hour)
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, err := manager.GenerateToken(7, 1, "jane@example.com", []string{RoleMember}, -time.Minute)
	assert.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
