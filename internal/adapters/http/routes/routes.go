package routes

import (
	"time"

	"procurehub/internal/adapters/http/handlers"
	"procurehub/internal/adapters/http/middleware"
	"procurehub/internal/adapters/storage"
	"procurehub/internal/config"
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the wired components the routes are built from
type Dependencies struct {
	Config   *config.Config
	Services *services.Services
	Adapters *storage.Adapters
	Seeder   *config.Seeder
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	svc := deps.Services

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg, deps.Adapters.Store)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	userHandler := handlers.NewUserHandler(svc.Users)
	projectHandler := handlers.NewProjectHandler(svc.Projects, svc.Uploads, svc.Bids)
	bidHandler := handlers.NewBidHandler(svc.Bids, svc.Projects)
	notificationHandler := handlers.NewNotificationHandler(svc.Notifications)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	loanHandler := handlers.NewLoanHandler(svc.Loans)
	supplyHandler := handlers.NewSupplyHandler(svc.Supply)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments)
	settingsHandler := handlers.NewSettingsHandler(deps.Adapters.App)
	adminHandler := handlers.NewAdminHandler(deps.Seeder, cfg)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", middleware.CacheControl(time.Hour), swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(api.Group("/auth"), authHandler, cfg)

	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	setupUserRoutes(userRoutes, userHandler)

	projectRoutes := api.Group("/projects")
	projectRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	setupProjectRoutes(projectRoutes, projectHandler)

	bidRoutes := api.Group("/bids")
	bidRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	setupBidRoutes(bidRoutes, bidHandler)

	notificationRoutes := api.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	setupNotificationRoutes(notificationRoutes, notificationHandler)

	dashboardRoutes := api.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	dashboardRoutes.Get("/", dashboardHandler.GetDashboard)

	loanRoutes := api.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler)

	setupSupplyRoutes(api, supplyHandler, cfg)

	paymentRoutes := api.Group("/payments")
	paymentRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	paymentRoutes.Get("/", paymentHandler.ListPayments)
	paymentRoutes.Post("/", paymentHandler.RecordPayment)

	settingsRoutes := api.Group("/settings")
	settingsRoutes.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	settingsRoutes.Get("/", settingsHandler.GetSettings)
	settingsRoutes.Put("/", settingsHandler.UpdateSettings)

	// Admin data management (admin only, 3 req/min/IP)
	adminRoutes := api.Group("/admin/data")
	adminRoutes.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly(), middleware.StrictRateLimiter())
	setupAdminRoutes(adminRoutes, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (10 req/min/IP)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Get("/:id", handler.GetUser)
	router.Put("/:id", handler.UpdateUser)
}

func setupProjectRoutes(router fiber.Router, handler *handlers.ProjectHandler) {
	gcOrAdmin := middleware.RequireRoles(domain.RoleGC, domain.RoleAdmin)

	router.Get("/", handler.ListProjects)
	router.Post("/", gcOrAdmin, handler.CreateProject)
	router.Get("/:id", handler.GetProject)
	router.Put("/:id", gcOrAdmin, handler.UpdateProject)
	router.Post("/:id/files", gcOrAdmin, handler.UploadFile)
	router.Get("/:id/bids/review", gcOrAdmin, handler.ReviewBids)
}

func setupBidRoutes(router fiber.Router, handler *handlers.BidHandler) {
	gcOrAdmin := middleware.RequireRoles(domain.RoleGC, domain.RoleAdmin)

	router.Get("/", handler.ListBids)
	router.Post("/", middleware.RequireRoles(domain.RoleSubcontractor), handler.SubmitBid)
	router.Get("/:id", handler.GetBid)
	router.Put("/:id", handler.UpdateBid)

	// Decisions (project owner or admin)
	router.Post("/:id/award", gcOrAdmin, handler.AwardBid)
	router.Post("/:id/reject", gcOrAdmin, handler.RejectBid)
	router.Post("/:id/clarify", gcOrAdmin, handler.RequestClarification)
}

func setupNotificationRoutes(router fiber.Router, handler *handlers.NotificationHandler) {
	router.Get("/", handler.ListNotifications)
	router.Get("/unread-count", handler.UnreadCount)
	router.Put("/read-all", handler.MarkAllRead)
	router.Put("/:id/read", handler.MarkRead)
	router.Delete("/:id", handler.DeleteNotification)
}

func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.ListLoans)
	router.Post("/", handler.ApplyForLoan)
	router.Get("/:id", handler.GetLoan)
	router.Put("/:id/decision", middleware.RequireRoles(domain.RoleBank, domain.RoleAdmin), handler.DecideLoan)
}

func setupSupplyRoutes(router fiber.Router, handler *handlers.SupplyHandler, cfg *config.Config) {
	supplier := middleware.RequireRoles(domain.RoleSupplier)

	inventory := router.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	inventory.Get("/", handler.ListInventory)
	inventory.Post("/", supplier, handler.UpsertInventoryItem)
	inventory.Put("/:id/stock", supplier, handler.AdjustStock)

	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg), middleware.NoCacheHeaders())
	orders.Get("/", handler.ListOrders)
	orders.Post("/", handler.PlaceOrder)
	orders.Put("/:id/status", handler.UpdateOrderStatus)
}

func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/export", handler.ExportData)
	router.Get("/history", handler.SeedHistory)
	router.Post("/import", handler.ImportData)
	router.Post("/seed", handler.SeedData)
	router.Delete("/", handler.ClearData)
}
