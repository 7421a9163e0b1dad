package middleware

import (
	"strings"

	"tms-shipflow/internal/config"
	"tms-shipflow/internal/pkg/jwt"
	"tms-shipflow/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT access tokens on protected routes
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "Missing or invalid authorization header")
		}

		claims, err := jwt.ValidateAccessToken(token, config.AppConfig.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// Store user info in context for handlers
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// OptionalAuth extracts and validates a bearer token when one is present,
// but lets the request through either way. Handlers decide what an
// anonymous caller is allowed to do.
func OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token != "" {
			if claims, err := jwt.ValidateAccessToken(token, config.AppConfig.JWT.Secret); err == nil {
				c.Locals("userID", claims.UserID)
				c.Locals("email", claims.Email)
				c.Locals("role", claims.Role)
			}
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
