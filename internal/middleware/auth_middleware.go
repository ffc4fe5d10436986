package middleware

import (
	"errors"
	"strings"

	"ads-inventory-ws/internal/handler"
	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/service"
	"ads-inventory-ws/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// sessionToken reads the session cookie, falling back to "Authorization: Bearer <token>".
func sessionToken(c *fiber.Ctx, cookieName string) (string, bool) {
	if token := c.Cookies(cookieName); token != "" {
		return token, true
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// RequireAuth validates the session token and sets the caller in context for downstream handlers.
func RequireAuth(authService service.AuthService, cookieName string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := sessionToken(c, cookieName)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing session token"})
		}

		principal, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
			}
			return err
		}

		user := principal.User
		c.Locals(handler.LocalPrincipal, principal)
		c.Locals(handler.LocalUserID, user.ID.String())
		c.Locals(handler.LocalUserName, user.Username)
		c.Locals(handler.LocalUserRole, string(user.Role))
		if log != nil {
			c.SetUserContext(log.WithUserID(c.UserContext(), user.ID.String()))
		}

		return c.Next()
	}
}

// RequireRole lets the request through when the caller has one of roles.
func RequireRole(roles ...model.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(handler.LocalUserRole).(string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "No role found"})
		}

		for _, r := range roles {
			if string(r) == role {
				return c.Next()
			}
		}

		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: requires role " + strings.Join(names, " or "),
		})
	}
}
