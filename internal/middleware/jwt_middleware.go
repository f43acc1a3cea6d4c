// Package middleware holds fiber middleware of the mock auth server.
package middleware

import (
	"strings"

	"coursehub/internal/models"
	"coursehub/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals set by AuthRequired.
const (
	LocalEmail = "email"
	LocalName  = "name"
)

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthRequired rejects requests without a valid token issued by the mock
// login and stores the token's email and name in the request locals.
func AuthRequired(authService *services.AuthService, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.AuthResponse{Message: "missing bearer token"})
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			log.Debug("jwt validation failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(models.AuthResponse{Message: "invalid or expired token"})
		}

		c.Locals(LocalEmail, claims["email"])
		c.Locals(LocalName, claims["name"])
		return c.Next()
	}
}
