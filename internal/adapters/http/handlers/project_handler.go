package handlers

import (
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
	uploadService  *services.UploadService
	bidService     *services.BidService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, uploadService *services.UploadService, bidService *services.BidService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		uploadService:  uploadService,
		bidService:     bidService,
	}
}

// ListProjects lists projects
// @Summary List projects
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param gcId query string false "Owning general contractor"
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.GetProjects(c.Context(), services.ProjectFilter{
		GCID:     c.Query("gcId"),
		Statuses: statusesOf[domain.ProjectStatus](c.Query("status")),
	})
	if err != nil {
		return handleError(c, err, "Failed to list projects")
	}

	return response.Success(c, "Projects retrieved successfully", pagination.Paginate(projects, pagination.GetParams(c)))
}

// GetProject gets a project
// @Summary Get project
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.projectService.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get project")
	}

	return response.Success(c, "Project retrieved successfully", project)
}

// CreateProject creates a project owned by the calling general contractor
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateProjectInput true "Project"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.CreateProjectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	// admins create on behalf of a gc, everyone else owns what they create
	if role != domain.RoleAdmin || req.GCID == "" {
		req.GCID = userID
	}

	project, err := h.projectService.CreateProject(c.Context(), req)
	if err != nil {
		return handleError(c, err, "Failed to create project")
	}

	return response.Created(c, "Project created successfully", project)
}

// UpdateProject applies a partial update
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param body body services.UpdateProjectInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	if err := h.authorizeOwner(c); err != nil {
		return handleError(c, err, "Failed to update project")
	}

	var req services.UpdateProjectInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	project, err := h.projectService.UpdateProject(c.Context(), c.Params("id"), req)
	if err != nil {
		return handleError(c, err, "Failed to update project")
	}

	return response.Success(c, "Project updated successfully", project)
}

// UploadFile validates a plan file and attaches its metadata to the project
// @Summary Upload plan file
// @Description Accepts PDF, DWG and DXF up to 10MB. Bytes are not stored.
// @Tags Projects
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param file formData file true "Plan file"
// @Param category formData string false "File category"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 413 {object} response.Response
// @Failure 415 {object} response.Response
// @Router /projects/{id}/files [post]
func (h *ProjectHandler) UploadFile(c *fiber.Ctx) error {
	if err := h.authorizeOwner(c); err != nil {
		return handleError(c, err, "Failed to upload file")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	file, err := h.uploadService.UploadFile(c.Context(), services.FileUpload{
		Name:     fh.Filename,
		MimeType: fh.Header.Get(fiber.HeaderContentType),
		Size:     fh.Size,
		Category: c.FormValue("category"),
	})
	if err != nil {
		return handleError(c, err, "Failed to upload file")
	}

	project, err := h.projectService.AttachFile(c.Context(), c.Params("id"), *file)
	if err != nil {
		return handleError(c, err, "Failed to attach file")
	}

	return response.Created(c, "File uploaded successfully", fiber.Map{
		"file":    file,
		"project": project,
	})
}

// ReviewBids ranks the project's bids for the owning general contractor
// @Summary Review project bids
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param sort query string false "amount, rating, timeline, experience or submitted" default(amount)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /projects/{id}/bids/review [get]
func (h *ProjectHandler) ReviewBids(c *fiber.Ctx) error {
	if err := h.authorizeOwner(c); err != nil {
		return handleError(c, err, "Failed to review bids")
	}

	review, err := h.bidService.ReviewBids(c.Context(), c.Params("id"), c.Query("sort"))
	if err != nil {
		return handleError(c, err, "Failed to review bids")
	}

	return response.Success(c, "Bids reviewed successfully", review)
}

// authorizeOwner lets the owning gc and admins through
func (h *ProjectHandler) authorizeOwner(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	project, err := h.projectService.GetProject(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if role != domain.RoleAdmin && project.GCID != userID {
		return domain.ErrForbidden
	}
	return nil
}
