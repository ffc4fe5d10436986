package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RequirementHandler struct {
	service service.RequirementService
}

func NewRequirementHandler(s service.RequirementService) *RequirementHandler {
	return &RequirementHandler{service: s}
}

func (h *RequirementHandler) GetRequirements(c *fiber.Ctx) error {
	clientID, err := queryUint(c, "client_id")
	if err != nil {
		return err
	}
	reqs, err := h.service.GetAllRequirements(c.UserContext(), repository.RequirementFilter{
		ClientID: clientID,
		Status:   c.Query("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(reqs)
}

func (h *RequirementHandler) GetRequirement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	r, err := h.service.GetRequirement(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *RequirementHandler) CreateRequirement(c *fiber.Ctx) error {
	var req service.RequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	r, err := h.service.CreateRequirement(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Requirement created",
		"data":    r,
	})
}

func (h *RequirementHandler) UpdateRequirement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.RequirementRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	r, err := h.service.UpdateRequirement(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Requirement updated",
		"data":    r,
	})
}

func (h *RequirementHandler) DeleteRequirement(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteRequirement(c.UserContext(), id, getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Requirement deleted"})
}
