package handlers

import (
	"procurehub/internal/adapters/storage"
	"procurehub/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cfg   *config.Config
	store *storage.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, store *storage.Store) *HealthHandler {
	return &HealthHandler{cfg: cfg, store: store}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 ProcureHub API v1.0 is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, storage and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if !h.cfg.UsesDatabase() {
		dbStatus = "disabled"
	} else if err := config.HealthCheck(); err != nil {
		dbStatus = "unhealthy"
	}

	storageStatus := "healthy"
	if !h.store.Available() {
		storageStatus = "unavailable"
	}

	status := fiber.StatusOK
	if dbStatus == "unhealthy" || storageStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": map[bool]string{true: "ok", false: "degraded"}[status == fiber.StatusOK],
		"checks": fiber.Map{
			"api":      "healthy",
			"storage":  storageStatus,
			"database": dbStatus,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "ProcureHub API v1.0",
		"version": "1.0.0",
	})
}
