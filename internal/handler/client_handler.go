package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	service service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{service: s}
}

// GetClients lists clients.
// Query params: active (bool), q
func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	active, err := queryBool(c, "active")
	if err != nil {
		return err
	}
	clients, err := h.service.GetAllClients(c.UserContext(), repository.ClientFilter{
		Active: active,
		Query:  c.Query("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(clients)
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	client, err := h.service.GetClient(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req service.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	client, err := h.service.CreateClient(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Client created",
		"data":    client,
	})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	client, err := h.service.UpdateClient(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Client updated",
		"data":    client,
	})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteClient(c.UserContext(), id, getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}
