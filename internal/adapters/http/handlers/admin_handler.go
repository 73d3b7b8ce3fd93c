package handlers

import (
	"procurehub/internal/config"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles data management endpoints (admin only)
type AdminHandler struct {
	seeder *config.Seeder
	cfg    *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(seeder *config.Seeder, cfg *config.Config) *AdminHandler {
	return &AdminHandler{seeder: seeder, cfg: cfg}
}

// ExportData downloads a JSON snapshot of all data
// @Summary Export data
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} config.Snapshot
// @Failure 503 {object} response.Response
// @Router /admin/data/export [get]
func (h *AdminHandler) ExportData(c *fiber.Ctx) error {
	data, err := h.seeder.Export(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to export data")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="procurehub-export.json"`)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(data)
}

// ImportData replaces all data with an uploaded snapshot
// @Summary Import data
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body config.Snapshot true "Snapshot"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/data/import [post]
func (h *AdminHandler) ImportData(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return response.BadRequest(c, "Snapshot body is required")
	}
	if err := h.seeder.Import(c.Context(), c.Body()); err != nil {
		return handleError(c, err, "Failed to import data")
	}

	return response.Success(c, "Data imported successfully", nil)
}

// ClearData removes every stored collection and setting
// @Summary Clear data
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/data [delete]
func (h *AdminHandler) ClearData(c *fiber.Ctx) error {
	if err := h.seeder.Clear(c.Context()); err != nil {
		return handleError(c, err, "Failed to clear data")
	}

	return response.Success(c, "Data cleared successfully", nil)
}

// SeedData overwrites all data with the static or a generated dataset
// @Summary Seed data
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param mode query string false "static or generated" default(static)
// @Param seed query int false "Generator seed"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/data/seed [post]
func (h *AdminHandler) SeedData(c *fiber.Ctx) error {
	cfg := *h.cfg
	cfg.Mock.SeedMode = c.Query("mode", config.SeedStatic)
	if cfg.Mock.SeedMode != config.SeedStatic && cfg.Mock.SeedMode != config.SeedGenerated {
		return response.BadRequest(c, "Mode must be static or generated")
	}
	cfg.Mock.Seed = int64(c.QueryInt("seed", int(h.cfg.Mock.Seed)))

	ds := h.seeder.Dataset(&cfg)
	if err := h.seeder.Seed(c.Context(), ds); err != nil {
		return handleError(c, err, "Failed to seed data")
	}

	return response.Success(c, "Data seeded successfully", fiber.Map{
		"mode":          cfg.Mock.SeedMode,
		"users":         len(ds.Users),
		"projects":      len(ds.Projects),
		"bids":          len(ds.Bids),
		"notifications": len(ds.Notifications),
	})
}

// SeedHistory lists recent seed and import runs
// @Summary Seed history
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of runs" default(20)
// @Success 200 {object} response.Response
// @Router /admin/data/history [get]
func (h *AdminHandler) SeedHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, err := h.seeder.History(c.Context(), limit)
	if err != nil {
		return handleError(c, err, "Failed to load seed history")
	}

	return response.Success(c, "Seed history retrieved successfully", runs)
}
