package handlers

import (
	"procurehub/internal/adapters/storage"
	"procurehub/internal/config"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler exposes the persisted client preferences
type SettingsHandler struct {
	app *storage.AppStorage
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(app *storage.AppStorage) *SettingsHandler {
	return &SettingsHandler{app: app}
}

// UpdateSettingsRequest is a partial settings update
type UpdateSettingsRequest struct {
	Theme       *storage.Theme `json:"theme"`
	SidebarOpen *bool          `json:"sidebarOpen"`
}

// GetSettings returns theme and sidebar state
// @Summary Get settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	return response.Success(c, "Settings retrieved successfully", h.current(c))
}

// UpdateSettings updates theme and sidebar state
// @Summary Update settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateSettingsRequest true "Settings"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Theme != nil && !req.Theme.Valid() {
		return response.UnprocessableEntity(c, "Theme must be light or dark")
	}

	if req.Theme != nil {
		h.app.SetTheme(c.Context(), *req.Theme)
	}
	if req.SidebarOpen != nil {
		h.app.SetSidebarOpen(c.Context(), *req.SidebarOpen)
	}

	return response.Success(c, "Settings updated successfully", h.current(c))
}

func (h *SettingsHandler) current(c *fiber.Ctx) config.Settings {
	return config.Settings{
		Theme:       h.app.GetTheme(c.Context()),
		SidebarOpen: h.app.GetSidebarOpen(c.Context()),
	}
}
