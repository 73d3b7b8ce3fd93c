package handlers

import (
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BidHandler handles bid endpoints
type BidHandler struct {
	bidService     *services.BidService
	projectService *services.ProjectService
}

// NewBidHandler creates a new bid handler
func NewBidHandler(bidService *services.BidService, projectService *services.ProjectService) *BidHandler {
	return &BidHandler{
		bidService:     bidService,
		projectService: projectService,
	}
}

// DecisionRequest carries the optional reason or question for a bid decision
type DecisionRequest struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ListBids lists bids
// @Summary List bids
// @Tags Bids
// @Produce json
// @Security BearerAuth
// @Param projectId query string false "Project filter"
// @Param subcontractorId query string false "Subcontractor filter"
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /bids [get]
func (h *BidHandler) ListBids(c *fiber.Ctx) error {
	bids, err := h.bidService.GetBids(c.Context(), services.BidFilter{
		ProjectID:       c.Query("projectId"),
		SubcontractorID: c.Query("subcontractorId"),
		Statuses:        statusesOf[domain.BidStatus](c.Query("status")),
	})
	if err != nil {
		return handleError(c, err, "Failed to list bids")
	}

	return response.Success(c, "Bids retrieved successfully", pagination.Paginate(bids, pagination.GetParams(c)))
}

// GetBid gets a bid
// @Summary Get bid
// @Tags Bids
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bids/{id} [get]
func (h *BidHandler) GetBid(c *fiber.Ctx) error {
	bid, err := h.bidService.GetBid(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get bid")
	}

	return response.Success(c, "Bid retrieved successfully", bid)
}

// SubmitBid submits a bid as the calling subcontractor
// @Summary Submit bid
// @Tags Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SubmitBidInput true "Bid"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /bids [post]
func (h *BidHandler) SubmitBid(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.SubmitBidInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.SubcontractorID = userID

	bid, err := h.bidService.SubmitBid(c.Context(), req)
	if err != nil {
		return handleError(c, err, "Failed to submit bid")
	}

	return response.Created(c, "Bid submitted successfully", bid)
}

// UpdateBid edits a pending bid owned by the caller
// @Summary Update bid
// @Tags Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Param body body services.UpdateBidInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bids/{id} [put]
func (h *BidHandler) UpdateBid(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	bid, err := h.bidService.GetBid(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to update bid")
	}
	if role != domain.RoleAdmin && bid.SubcontractorID != userID {
		return response.Forbidden(c, "You can only update your own bids")
	}

	var req services.UpdateBidInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.bidService.UpdateBid(c.Context(), bid.ID, req)
	if err != nil {
		return handleError(c, err, "Failed to update bid")
	}

	return response.Success(c, "Bid updated successfully", updated)
}

// AwardBid awards a bid and rejects the project's other pending bids
// @Summary Award bid
// @Tags Bids
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bids/{id}/award [post]
func (h *BidHandler) AwardBid(c *fiber.Ctx) error {
	if err := h.authorizeProjectOwner(c); err != nil {
		return handleError(c, err, "Failed to award bid")
	}

	bid, err := h.bidService.AwardBid(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to award bid")
	}

	return response.Success(c, "Bid awarded successfully", bid)
}

// RejectBid rejects a pending bid
// @Summary Reject bid
// @Tags Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Param body body DecisionRequest false "Reason"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bids/{id}/reject [post]
func (h *BidHandler) RejectBid(c *fiber.Ctx) error {
	if err := h.authorizeProjectOwner(c); err != nil {
		return handleError(c, err, "Failed to reject bid")
	}

	var req DecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	bid, err := h.bidService.RejectBid(c.Context(), c.Params("id"), req.Reason)
	if err != nil {
		return handleError(c, err, "Failed to reject bid")
	}

	return response.Success(c, "Bid rejected successfully", bid)
}

// RequestClarification asks the subcontractor a question about a pending bid
// @Summary Request clarification
// @Tags Bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Bid ID"
// @Param body body DecisionRequest true "Question"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /bids/{id}/clarify [post]
func (h *BidHandler) RequestClarification(c *fiber.Ctx) error {
	if err := h.authorizeProjectOwner(c); err != nil {
		return handleError(c, err, "Failed to request clarification")
	}

	var req DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	bid, err := h.bidService.RequestClarification(c.Context(), c.Params("id"), req.Message)
	if err != nil {
		return handleError(c, err, "Failed to request clarification")
	}

	return response.Success(c, "Clarification requested", bid)
}

// authorizeProjectOwner lets the gc owning the bid's project and admins through
func (h *BidHandler) authorizeProjectOwner(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	if role == domain.RoleAdmin {
		return nil
	}
	bid, err := h.bidService.GetBid(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	project, err := h.projectService.GetProject(c.Context(), bid.ProjectID)
	if err != nil {
		return err
	}
	if project.GCID != userID {
		return domain.ErrForbidden
	}
	return nil
}
