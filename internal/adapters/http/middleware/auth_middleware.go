package middleware

import (
	"errors"
	"strings"

	"procurehub/internal/config"
	"procurehub/internal/core/domain"
	"procurehub/internal/pkg/jwt"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenCookie is the cookie the login handler sets
const AccessTokenCookie = "access_token"

// bearerToken reads the access token from the Authorization header, then the cookie
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Cookies(AccessTokenCookie)
}

// AuthMiddleware rejects requests without a valid access token
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RequireRoles allows only the given roles through
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, r := range allowed {
			if domain.Role(role) == r {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}
