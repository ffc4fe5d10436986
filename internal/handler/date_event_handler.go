package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DateEventHandler exposes the append-only product timeline. There are no update or delete routes.
type DateEventHandler struct {
	service service.DateEventService
}

func NewDateEventHandler(s service.DateEventService) *DateEventHandler {
	return &DateEventHandler{service: s}
}

func (h *DateEventHandler) GetEvents(c *fiber.Ctx) error {
	clientID, err := queryUint(c, "client_id")
	if err != nil {
		return err
	}
	events, err := h.service.GetAllEvents(c.UserContext(), repository.DateEventFilter{
		AdsID:     c.Query("ads_id"),
		EventType: c.Query("event_type"),
		ClientID:  clientID,
	})
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (h *DateEventHandler) GetEvent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	event, err := h.service.GetEvent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(event)
}

func (h *DateEventHandler) CreateEvent(c *fiber.Ctx) error {
	var req service.DateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	event, err := h.service.CreateEvent(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Event recorded",
		"data":    event,
	})
}
