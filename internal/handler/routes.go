package handler

import "github.com/gofiber/fiber/v2"

// Handlers bundles every HTTP handler mounted under /api.
type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Products     *ProductHandler
	Clients      *ClientHandler
	Requirements *RequirementHandler
	Orders       *OrderHandler
	Sales        *SaleHandler
	Recovery     *RecoveryHandler
	Events       *DateEventHandler
	Dashboard    *DashboardHandler
}

// Register mounts the API. requireAuth guards everything but login and token validation;
// adminOnly additionally guards user management.
func Register(api fiber.Router, h *Handlers, requireAuth, adminOnly fiber.Handler) {
	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/validate-token", h.Auth.ValidateToken)
	auth.Post("/logout", requireAuth, h.Auth.Logout)
	auth.Get("/me", requireAuth, h.Auth.Me)
	auth.Post("/change-password", requireAuth, h.Auth.ChangePassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/sales-movement", h.Dashboard.GetSalesMovement)

	protected.Get("/products", h.Products.GetProducts)
	protected.Post("/products", h.Products.CreateProduct)
	protected.Get("/products/:adsId", h.Products.GetProduct)
	protected.Put("/products/:adsId", h.Products.UpdateProduct)
	protected.Delete("/products/:adsId", h.Products.DeleteProduct)
	protected.Get("/products/:adsId/events", h.Products.GetProductEvents)
	protected.Post("/products/:adsId/status", h.Products.ChangeStatus)

	protected.Get("/clients", h.Clients.GetClients)
	protected.Post("/clients", h.Clients.CreateClient)
	protected.Get("/clients/:id", h.Clients.GetClient)
	protected.Put("/clients/:id", h.Clients.UpdateClient)
	protected.Delete("/clients/:id", h.Clients.DeleteClient)

	protected.Get("/client-requirements", h.Requirements.GetRequirements)
	protected.Post("/client-requirements", h.Requirements.CreateRequirement)
	protected.Get("/client-requirements/:id", h.Requirements.GetRequirement)
	protected.Put("/client-requirements/:id", h.Requirements.UpdateRequirement)
	protected.Delete("/client-requirements/:id", h.Requirements.DeleteRequirement)

	protected.Get("/orders", h.Orders.GetOrders)
	protected.Post("/orders", h.Orders.CreateOrder)
	protected.Get("/orders/by-order-id/:orderId", h.Orders.GetOrderByOrderID)
	protected.Get("/orders/:id", h.Orders.GetOrder)
	protected.Put("/orders/:id", h.Orders.UpdateOrder)
	protected.Delete("/orders/:id", h.Orders.DeleteOrder)
	protected.Get("/orders/:id/sales", h.Orders.GetOrderSales)

	protected.Get("/sales/buy", h.Sales.GetBuys)
	protected.Post("/sales/buy", h.Sales.CreateBuy)
	protected.Get("/sales/buy/:id", h.Sales.GetBuy)
	protected.Put("/sales/buy/:id", h.Sales.UpdateBuy)
	protected.Delete("/sales/buy/:id", h.Sales.DeleteBuy)

	protected.Get("/sales/rent", h.Sales.GetRents)
	protected.Post("/sales/rent", h.Sales.CreateRent)
	protected.Get("/sales/rent/:id", h.Sales.GetRent)
	protected.Put("/sales/rent/:id", h.Sales.UpdateRent)
	protected.Patch("/sales/rent/:id/payment-status", h.Sales.UpdateRentPaymentStatus)
	protected.Delete("/sales/rent/:id", h.Sales.DeleteRent)

	protected.Get("/recovery-items", h.Recovery.GetRecoveryItems)
	protected.Post("/recovery-items", h.Recovery.CreateRecoveryItem)
	protected.Get("/recovery-items/:id", h.Recovery.GetRecoveryItem)
	protected.Put("/recovery-items/:id", h.Recovery.UpdateRecoveryItem)
	protected.Delete("/recovery-items/:id", h.Recovery.DeleteRecoveryItem)

	protected.Get("/product-date-events", h.Events.GetEvents)
	protected.Post("/product-date-events", h.Events.CreateEvent)
	protected.Get("/product-date-events/:id", h.Events.GetEvent)

	// User management (admin only)
	users := protected.Group("/users", adminOnly)
	users.Get("/", h.Users.GetUsers)
	users.Post("/", h.Users.CreateUser)
	users.Get("/:id", h.Users.GetUser)
	users.Put("/:id", h.Users.UpdateUser)
	users.Delete("/:id", h.Users.DeleteUser)
}
