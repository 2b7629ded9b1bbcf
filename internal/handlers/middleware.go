package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/services"
)

const identityKey = "identity"

// AuthMiddleware validates the bearer credential with the identity provider
// and stores the resulting identity in the request locals.
func AuthMiddleware(provider services.IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		identity, err := provider.Authenticate(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired credential",
			})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireRole guards a route group to the given roles. Admins pass every
// check.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		if identity.Role == models.RoleAdmin {
			return c.Next()
		}
		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient role",
		})
	}
}

// CurrentIdentity returns the authenticated identity of the request, or nil
// outside an authenticated route.
func CurrentIdentity(c *fiber.Ctx) *models.Identity {
	identity, _ := c.Locals(identityKey).(*models.Identity)
	return identity
}
