package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID attaches a request id to every response, generating one when
// the caller did not supply it.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("request_id", rid)
		c.Set("X-Request-ID", rid)
		return c.Next()
	}
}
