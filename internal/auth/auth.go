package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleWallet = "wallet"
	RoleAdmin  = "admin"
)

type Authenticator interface {
	GenerateToken(subject, role string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*jwt.Token, error)
}
