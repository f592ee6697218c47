package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"blogcms/internal/services"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// On success the actor's id, email and role are stored in the request
// context for downstream handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":      false,
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":      false,
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"ok":      false,
				"message": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("email", claims["email"])
		c.Locals("role", claims["role"])

		return c.Next()
	}
}

// RequireRole restricts a route to actors whose token carries the given
// role. Must run after AuthRequired.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorRole, _ := c.Locals("role").(string)
		if actorRole != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"ok":      false,
				"message": "Insufficient permissions",
			})
		}
		return c.Next()
	}
}
