package handlers

import (
	"procurehub/internal/core/domain"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/pagination"
	"procurehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPayments lists payments the caller sent or received
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	filter := services.PaymentFilter{UserID: userID}
	if role == domain.RoleAdmin {
		filter.UserID = c.Query("userId")
	}

	payments, err := h.paymentService.GetPayments(c.Context(), filter)
	if err != nil {
		return handleError(c, err, "Failed to list payments")
	}

	return response.Success(c, "Payments retrieved successfully", pagination.Paginate(payments, pagination.GetParams(c)))
}

// RecordPayment records a payment from the caller
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.RecordPaymentInput true "Payment"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) RecordPayment(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.RecordPaymentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.PayerID = userID

	payment, err := h.paymentService.RecordPayment(c.Context(), req)
	if err != nil {
		return handleError(c, err, "Failed to record payment")
	}

	return response.Created(c, "Payment recorded", payment)
}
