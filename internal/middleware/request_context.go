package middleware

import (
	"ads-inventory-ws/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestContext tags the request's logging context with the id assigned by the requestid middleware.
// It must be registered after requestid.New().
func RequestContext(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rid := c.GetRespHeader(fiber.HeaderXRequestID); rid != "" {
			c.SetUserContext(log.WithRequestID(c.UserContext(), rid))
		}
		return c.Next()
	}
}
