package middleware

import (
	"log"
	"strings"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// AuthRequired is a Fiber middleware that verifies the bearer token and
// stores the resolved identity in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Token is missing",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(identityKey, *identity)
		return c.Next()
	}
}

// RoleRequired rejects requests whose identity does not hold the given role.
// It must run after AuthRequired.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals(identityKey).(models.Identity)
		if !ok || identity.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}
		return c.Next()
	}
}

// IdentityFrom extracts the identity stored by AuthRequired.
func IdentityFrom(c *fiber.Ctx) models.Identity {
	identity, _ := c.Locals(identityKey).(models.Identity)
	return identity
}
