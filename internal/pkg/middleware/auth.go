package middleware

import (
	icuser "github.com/ManuelReschke/PayPlan/internal/pkg/usercontext"
	"github.com/gofiber/fiber/v2"
)

// RequireAPIAuth ensures the request was authenticated by the token
// middleware and returns JSON 401 otherwise.
func RequireAPIAuth(c *fiber.Ctx) error {
	v := c.Locals(icuser.KeyFromProtected)
	loggedIn := false
	if b, ok := v.(bool); ok {
		loggedIn = b
	}
	if !loggedIn {
		c.Set(fiber.HeaderWWWAuthenticate, "Token")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Authentication credentials were not provided",
		})
	}
	return c.Next()
}
