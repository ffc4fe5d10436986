package handler

import (
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GetProducts lists live products.
// Query params: status, health, brand, condition, q
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext(), repository.ProductFilter{
		Status:    c.Query("status"),
		Health:    c.Query("health"),
		Brand:     c.Query("brand"),
		Condition: c.Query("condition"),
		Query:     c.Query("q"),
	})
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("adsId"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetProductEvents returns the unit's timeline, oldest first.
func (h *ProductHandler) GetProductEvents(c *fiber.Ctx) error {
	events, err := h.service.GetProductEvents(c.UserContext(), c.Params("adsId"))
	if err != nil {
		return err
	}
	return c.JSON(events)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created",
		"data":    product,
	})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), c.Params("adsId"), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product updated",
		"data":    product,
	})
}

// ChangeStatus moves the product to a new status and logs the matching date event.
// POST /api/products/:adsId/status
func (h *ProductHandler) ChangeStatus(c *fiber.Ctx) error {
	var req service.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	product, event, err := h.service.ChangeStatus(c.UserContext(), c.Params("adsId"), &req, getUserName(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product status updated",
		"data": fiber.Map{
			"product": product,
			"event":   event,
		},
	})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("adsId"), getUserName(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}
