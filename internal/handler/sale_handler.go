package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

func saleFilter(c *fiber.Ctx) (repository.SaleFilter, error) {
	clientID, err := queryUint(c, "client_id")
	if err != nil {
		return repository.SaleFilter{}, err
	}
	return repository.SaleFilter{
		ClientID: clientID,
		OrderID:  c.Query("order_id"),
		AdsID:    c.Query("ads_id"),
	}, nil
}

// ============ PURCHASES ============

func (h *SaleHandler) GetBuys(c *fiber.Ctx) error {
	filter, err := saleFilter(c)
	if err != nil {
		return err
	}
	buys, err := h.service.GetAllBuys(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(buys)
}

func (h *SaleHandler) GetBuy(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	buy, err := h.service.GetBuy(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(buy)
}

// CreateBuy records a sale and marks the unit sold.
// POST /api/sales/buy
func (h *SaleHandler) CreateBuy(c *fiber.Ctx) error {
	var req service.CreateBuyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	buy, err := h.service.CreateBuy(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Sale recorded",
		"data":    buy,
	})
}

func (h *SaleHandler) UpdateBuy(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateBuyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	buy, err := h.service.UpdateBuy(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Sale updated",
		"data":    buy,
	})
}

func (h *SaleHandler) DeleteBuy(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteBuy(c.UserContext(), id, getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sale deleted"})
}

// ============ RENTALS ============

func (h *SaleHandler) GetRents(c *fiber.Ctx) error {
	filter, err := saleFilter(c)
	if err != nil {
		return err
	}
	rents, err := h.service.GetAllRents(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(rents)
}

func (h *SaleHandler) GetRent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	rent, err := h.service.GetRent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(rent)
}

// CreateRent records a lease and marks the unit leased.
// POST /api/sales/rent
func (h *SaleHandler) CreateRent(c *fiber.Ctx) error {
	var req service.CreateRentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	rent, err := h.service.CreateRent(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Lease recorded",
		"data":    rent,
	})
}

func (h *SaleHandler) UpdateRent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.UpdateRentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	rent, err := h.service.UpdateRent(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Lease updated",
		"data":    rent,
	})
}

// UpdateRentPaymentStatus
// PATCH /api/sales/rent/:id/payment-status
func (h *SaleHandler) UpdateRentPaymentStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.RentPaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	rent, err := h.service.UpdateRentPaymentStatus(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Payment status updated",
		"data":    rent,
	})
}

func (h *SaleHandler) DeleteRent(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteRent(c.UserContext(), id, getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Lease deleted"})
}
