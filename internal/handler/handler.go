package handler

import (
	"errors"
	"strconv"

	"ads-inventory-ws/internal/service"
	"ads-inventory-ws/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// Locals keys populated by the auth middleware.
const (
	LocalPrincipal = "principal"
	LocalUserID    = "user_id"
	LocalUserName  = "user_name"
	LocalUserRole  = "user_role"
)

// ErrorHandler turns errors returned by handlers into JSON responses.
// Unknown errors are logged and reported as a generic 500.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		case errors.Is(err, service.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}

		ctx := log.WithField(c.UserContext(), "path", c.Path())
		ctx = log.WithField(ctx, "method", c.Method())
		log.Error(ctx, "request failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

// getUserName is the audit name stamped on created_by/updated_by columns.
func getUserName(c *fiber.Ctx) string {
	name, ok := c.Locals(LocalUserName).(string)
	if !ok || name == "" {
		return "system"
	}
	return name
}

func getPrincipal(c *fiber.Ctx) (*service.Principal, bool) {
	p, ok := c.Locals(LocalPrincipal).(*service.Principal)
	return p, ok && p != nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// queryUint returns 0 for a missing query value and an error for a malformed one.
func queryUint(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return &v, nil
}
