package middleware

import (
	"shopper/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired is a Fiber middleware gating protected endpoints on a valid
// bearer token carried in the auth-token header. On success the resolved user
// id is stored in the request context under "user_id"; on failure the request
// is rejected with 401 and the handler is never invoked.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("auth-token")

		userID, err := authService.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"errors":  "Please authenticate using a valid token",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}
