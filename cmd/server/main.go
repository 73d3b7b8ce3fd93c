package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"procurehub/internal/adapters/http/middleware"
	"procurehub/internal/adapters/http/routes"
	"procurehub/internal/adapters/persistence/repositories"
	"procurehub/internal/adapters/storage"
	"procurehub/internal/config"
	"procurehub/internal/core/services"
	"procurehub/internal/metrics"

	"github.com/gofiber/fiber/v2"

	_ "procurehub/docs" // Swagger docs
)

// @title ProcureHub API
// @version 1.0
// @description Construction procurement marketplace API: projects, bids, notifications, financing and supply.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@procurehub.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	metrics.Register()

	// Connect storage (memory, or MySQL/Postgres key-value table)
	backend, err := config.NewBackend(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer config.CloseDatabase()

	adapters := storage.NewAdapters(storage.NewStore(backend))

	var runs *repositories.SeedRunRepository
	if config.DB != nil {
		runs = repositories.NewSeedRunRepository(config.DB)
	}
	seeder := config.NewSeeder(adapters, runs)

	if cfg.Mock.SeedOnStart {
		if _, err := seeder.SeedIfEmpty(context.Background(), seeder.Dataset(cfg)); err != nil {
			log.Printf("⚠️ Warning: Failed to seed data: %v", err)
		}
	}

	svc := services.New(services.NewStorageRepositories(adapters), cfg, services.NewEnv(cfg.Mock.Delay))

	// Start cron jobs (notification retention, snapshots)
	cronService := services.NewCronService(cfg.Cron, svc.Notifications, seeder)
	if err := cronService.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ProcureHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    services.MaxUploadSize + 1024*1024,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	routes.Setup(app, routes.Dependencies{
		Config:   cfg,
		Services: svc,
		Adapters: adapters,
		Seeder:   seeder,
	})

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s, STORAGE: %s]", cfg.Port, cfg.AppMode, cfg.Database.Driver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
