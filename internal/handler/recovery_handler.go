package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RecoveryHandler struct {
	service service.RecoveryService
}

func NewRecoveryHandler(s service.RecoveryService) *RecoveryHandler {
	return &RecoveryHandler{service: s}
}

func (h *RecoveryHandler) GetRecoveryItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllRecoveryItems(c.UserContext(), repository.RecoveryFilter{
		Status:        c.Query("status"),
		OriginalAdsID: c.Query("original_ads_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *RecoveryHandler) GetRecoveryItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.service.GetRecoveryItem(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *RecoveryHandler) CreateRecoveryItem(c *fiber.Ctx) error {
	var req service.RecoveryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	item, err := h.service.CreateRecoveryItem(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Recovery item created",
		"data":    item,
	})
}

func (h *RecoveryHandler) UpdateRecoveryItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.RecoveryRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	item, err := h.service.UpdateRecoveryItem(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Recovery item updated",
		"data":    item,
	})
}

func (h *RecoveryHandler) DeleteRecoveryItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteRecoveryItem(c.UserContext(), id, getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Recovery item deleted"})
}
