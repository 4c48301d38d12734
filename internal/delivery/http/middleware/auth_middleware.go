package middleware

import (
	"strings"

	"creatorkit/internal/delivery/http/response"
	"creatorkit/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// ContextUserIDKey is the echo context key carrying the authenticated user id.
const ContextUserIDKey = "userID"

// ContextRolesKey is the echo context key carrying the authenticated roles.
const ContextRolesKey = "roles"

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the verified claims on
// the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "Invalid or expired token")
		}
		if claims.Type != "access" {
			return response.Unauthorized(c, "UNAUTHORIZED", "Refresh tokens cannot authorize requests")
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRolesKey, claims.Roles)

		return next(c)
	}
}
