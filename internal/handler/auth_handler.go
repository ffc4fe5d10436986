package handler

import (
	"time"

	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions controls the session cookie written on login.
type CookieOptions struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieOptions
}

func NewAuthHandler(authService service.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// ValidateTokenRequest represents the validate token request body
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Login handles user authentication and sets the session cookie.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(c.UserContext(), &req, service.SessionMeta{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    response.Token,
		Path:     "/",
		Expires:  response.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(response)
}

// Logout deletes the current session and clears the cookie.
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := h.authService.Logout(c.UserContext(), p.SessionID); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated user.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(p.User)
}

// ChangePassword updates the caller's password and signs out their other sessions.
// POST /api/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	p, ok := getPrincipal(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req service.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	if err := h.authService.ChangePassword(c.UserContext(), p, &req); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// ValidateToken checks a token without requiring it on the request.
// POST /api/auth/validate-token
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token is required"})
	}

	p, err := h.authService.Authenticate(c.UserContext(), req.Token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"valid": true, "user": p.User})
}
