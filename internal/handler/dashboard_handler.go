package handler

import (
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetSalesMovement returns daily buy/rent counts for charts
// Query params: days (default 7)
func (h *DashboardHandler) GetSalesMovement(c *fiber.Ctx) error {
	days := service.ClampDays(c.QueryInt("days", 0))

	data, err := h.service.GetSalesMovement(c.UserContext(), days)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetDashboardStats returns overview statistics.
// ?refresh=true drops the cached copy first.
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		h.service.InvalidateStats(c.UserContext())
	}

	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}
