package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates a route group on the caller's role, which JWT already
// resolved from the database. Must be registered after JWT.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		if role != "ADMIN" {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
