package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ads-inventory-ws/internal/handler"
	"ads-inventory-ws/internal/jobs"
	"ads-inventory-ws/internal/middleware"
	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/service"
	"ads-inventory-ws/internal/ws"
	"ads-inventory-ws/pkg/cache"
	"ads-inventory-ws/pkg/config"
	"ads-inventory-ws/pkg/database"
	applog "ads-inventory-ws/pkg/logger"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource so its defers fire on both the error and the shutdown path.
func run() error {
	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	appLog := applog.New(applog.Options{
		ServiceName: "ads-inventory-ws",
		Level:       applog.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer database.Close(db)

	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// 3. Optional redis for the dashboard cache
	var statsCache cache.Store
	if cfg.Redis.Enabled() {
		redisClient, err := cache.New(ctx, cfg.Redis.URL)
		if err != nil {
			appLog.Error(ctx, "redis unavailable, dashboard cache disabled", err)
		} else {
			defer redisClient.Close()
			statsCache = redisClient
		}
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(appLog)
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	clientRepo := repository.NewClientRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	eventRepo := repository.NewDateEventRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)

	productService := service.NewProductService(productRepo, eventRepo, db, wsHub)
	clientService := service.NewClientService(clientRepo)
	requirementService := service.NewRequirementService(repository.NewRequirementRepo(db), clientRepo)
	orderService := service.NewOrderService(orderRepo, clientRepo, productRepo, saleRepo, db, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, clientRepo, orderRepo, eventRepo, db, wsHub)
	recoveryService := service.NewRecoveryService(repository.NewRecoveryRepo(db), productRepo, clientRepo, eventRepo, db, wsHub)
	eventService := service.NewDateEventService(eventRepo, productRepo, clientRepo, wsHub)
	dashService := service.NewDashboardService(repository.NewDashboardRepo(db), statsCache, cfg.Dashboard.CacheTTL, appLog)
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.Session.Secret, cfg.Session.TTL, wsHub, appLog)
	userService := service.NewUserService(userRepo, sessionRepo)

	// 6. Seed the bootstrap admin
	if created, err := userService.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		appLog.Error(ctx, "seeding admin user", err)
	} else if created {
		appLog.Info(appLog.WithField(ctx, "username", cfg.Admin.Username), "admin user created")
	}

	// 7. Housekeeping
	scheduler := jobs.NewScheduler(appLog)
	if err := scheduler.AddSessionPurge(cfg.Session.PurgeSchedule, authService); err != nil {
		return err
	}
	scheduler.Start()

	// 8. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: handler.ErrorHandler(appLog),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestContext(appLog))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	// the session cookie needs credentialed requests, so origins are listed explicitly
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigins,
		AllowCredentials: true,
	}))

	prometheus := fiberprometheus.New("ads_inventory")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			appLog.Error(c.UserContext(), "health check failed", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": wsHub.ClientCount()})
	})

	// 9. Routes
	handler.Register(app.Group("/api"), &handler.Handlers{
		Auth:         handler.NewAuthHandler(authService, handler.CookieOptions{Name: cfg.Session.CookieName, Secure: cfg.Session.SecureCookie}),
		Users:        handler.NewUserHandler(userService),
		Products:     handler.NewProductHandler(productService),
		Clients:      handler.NewClientHandler(clientService),
		Requirements: handler.NewRequirementHandler(requirementService),
		Orders:       handler.NewOrderHandler(orderService),
		Sales:        handler.NewSaleHandler(saleService),
		Recovery:     handler.NewRecoveryHandler(recoveryService),
		Events:       handler.NewDateEventHandler(eventService),
		Dashboard:    handler.NewDashboardHandler(dashService),
	},
		middleware.RequireAuth(authService, cfg.Session.CookieName, appLog),
		middleware.RequireRole(model.RoleAdmin),
	)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Handler()))

	// 10. Graceful Shutdown
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(":" + cfg.App.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	var listenErr error
	select {
	case <-quit:
	case listenErr = <-serverErr:
		appLog.Error(ctx, "server stopped listening", listenErr)
	}

	appLog.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error(ctx, "server forced to shutdown", err)
	}
	scheduler.Stop(shutdownCtx)
	stop()

	appLog.Info(ctx, "server exited")
	if listenErr != nil {
		return fmt.Errorf("listen: %w", listenErr)
	}
	return nil
}
