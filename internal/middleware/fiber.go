package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RateLimit enforces per-IP and, when the request carries an email,
// per-identity limits on API routes.
func RateLimit(rl *RateLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.CheckIPLimit(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "RATE_LIMIT_EXCEEDED",
				"message": "too many requests from this address",
			})
		}

		var body struct {
			Email string `json:"email"`
		}
		identity := c.Params("email")
		if identity == "" && len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err == nil {
				identity = body.Email
			}
		}

		if identity != "" && !rl.CheckUserLimit(identity) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "RATE_LIMIT_EXCEEDED",
				"message": "too many requests for this account",
			})
		}

		return c.Next()
	}
}
