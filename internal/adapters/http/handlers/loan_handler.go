package handlers

import (
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// LoanDecisionRequest approves or rejects a loan
type LoanDecisionRequest struct {
	Approve bool `json:"approve"`
}

// ListLoans lists loans visible to the caller. Banks see applications made to
// them, admins see everything, everyone else sees their own.
// @Summary List loans
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param status query string false "Comma separated statuses"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) ListLoans(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := services.LoanFilter{Statuses: statusesOf[domain.LoanStatus](c.Query("status"))}
	switch role {
	case domain.RoleAdmin:
	case domain.RoleBank:
		filter.BankID = userID
	default:
		filter.BorrowerID = userID
	}

	loans, err := h.loanService.GetLoans(c.Context(), filter)
	if err != nil {
		return handleError(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.Paginate(loans, pagination.GetParams(c)))
}

// GetLoan gets a loan the caller is party to
// @Summary Get loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetLoan(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	loan, err := h.loanService.GetLoan(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to get loan")
	}
	if role != domain.RoleAdmin && loan.BorrowerID != userID && loan.BankID != userID {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// ApplyForLoan files an application as the caller
// @Summary Apply for loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ApplyForLoanInput true "Application"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) ApplyForLoan(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.ApplyForLoanInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.BorrowerID = userID

	loan, err := h.loanService.ApplyForLoan(c.Context(), req)
	if err != nil {
		return handleError(c, err, "Failed to apply for loan")
	}

	return response.Created(c, "Loan application submitted", loan)
}

// DecideLoan approves or rejects a pending application made to the calling bank
// @Summary Decide loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Param body body LoanDecisionRequest true "Decision"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/decision [put]
func (h *LoanHandler) DecideLoan(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req LoanDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.GetLoan(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err, "Failed to decide loan")
	}
	if role != domain.RoleAdmin && loan.BankID != userID {
		return response.Forbidden(c, "Only the lending bank can decide this loan")
	}

	decided, err := h.loanService.DecideLoan(c.Context(), loan.ID, req.Approve)
	if err != nil {
		return handleError(c, err, "Failed to decide loan")
	}

	return response.Success(c, "Loan "+string(decided.Status), decided)
}
