package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", "paygate", "paygate")

	token, err := a.GenerateToken("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", RoleWallet, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := a.ValidateToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin", claims["sub"])
	require.Equal(t, RoleWallet, claims["role"])
}

func TestJWTAuthenticator_RejectsWrongSecret(t *testing.T) {
	a := NewJWTAuthenticator("secret-a", "paygate", "paygate")
	b := NewJWTAuthenticator("secret-b", "paygate", "paygate")

	token, err := a.GenerateToken("admin:1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = b.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTAuthenticator_RejectsExpired(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", "paygate", "paygate")

	token, err := a.GenerateToken("admin:1", RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = a.ValidateToken(token)
	require.Error(t, err)
}
