package handlers

import (
	"strconv"

	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers handles listing users
// @Summary List users
// @Description Get a paginated list of users, optionally by role and verification
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param verified query bool false "Verification filter"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	filter := services.UserFilter{Role: domain.Role(c.Query("role"))}
	if filter.Role != "" && !filter.Role.Valid() {
		return response.BadRequest(c, "Invalid role")
	}
	if v := c.Query("verified"); v != "" {
		verified, err := strconv.ParseBool(v)
		if err != nil {
			return response.BadRequest(c, "Invalid verified flag")
		}
		filter.Verified = &verified
	}

	users, err := h.userService.GetUsers(c.Context(), filter)
	if err != nil {
		return handleError(c, err, "Failed to list users")
	}

	out := make([]*domain.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return response.Success(c, "Users retrieved successfully", pagination.Paginate(out, pagination.GetParams(c)))
}

// GetUser handles getting a user by ID
// @Summary Get user by ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user.ToResponse())
}

// UpdateUser handles profile updates. Users edit themselves; admins edit anyone.
// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param body body services.UpdateUserInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	id := c.Params("id")
	if id != userID && role != domain.RoleAdmin {
		return response.Forbidden(c, "You can only update your own profile")
	}

	var req services.UpdateUserInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Verified != nil && role != domain.RoleAdmin {
		return response.Forbidden(c, "Only admins can change verification")
	}

	user, err := h.userService.UpdateUser(c.Context(), id, req)
	if err != nil {
		return handleError(c, err, "Failed to update user")
	}

	return response.Success(c, "User updated successfully", user.ToResponse())
}
