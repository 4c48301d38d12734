package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims are the verified claims of an access or refresh token.
type TokenClaims struct {
	UserID uuid.UUID
	Roles  []string
	Type   string // "access" or "refresh"
}

// TokenService verifies the bearer tokens issued by the identity provider.
// This service never issues end-user sessions itself; GenerateTokens exists
// for tooling and tests.
type TokenService interface {
	GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)
	ValidateToken(tokenString string) (*TokenClaims, error)
	GetRefreshTokenDuration() time.Duration
}
