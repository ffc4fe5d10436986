package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// GetOrders lists orders, newest order_date first.
// Query params: client_id, order_type
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	clientID, err := queryUint(c, "client_id")
	if err != nil {
		return err
	}
	orders, err := h.service.GetAllOrders(c.UserContext(), repository.OrderFilter{
		ClientID:  clientID,
		OrderType: c.Query("order_type"),
	})
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.GetOrder(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// GetOrderByOrderID looks an order up by its business id (ORD-...).
func (h *OrderHandler) GetOrderByOrderID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByOrderID(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(order)
}

func (h *OrderHandler) GetOrderSales(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	sales, err := h.service.GetOrderSales(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(sales)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req service.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.service.CreateOrder(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created",
		"data":    order,
	})
}

func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req service.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.service.UpdateOrder(c.UserContext(), id, &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Order updated",
		"data":    order,
	})
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrder(c.UserContext(), id, getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Order deleted"})
}
