package services

import (
	"context"
	"fmt"
	"time"

	"procurehub/internal/core/domain"
)

// PaymentService records simulated payments. No money moves.
type PaymentService struct {
	repos         *Repositories
	notifications *NotificationService
	env           Env
}

// NewPaymentService creates a new payment service
func NewPaymentService(repos *Repositories, notifications *NotificationService, env Env) *PaymentService {
	return &PaymentService{repos: repos, notifications: notifications, env: env}
}

// PaymentFilter narrows GetPayments to payments a user sent or received
type PaymentFilter struct {
	UserID string
	Limit  int
}

// RecordPaymentInput for recording a payment
type RecordPaymentInput struct {
	PayerID string               `json:"payerId"`
	PayeeID string               `json:"payeeId"`
	OrderID string               `json:"orderId"`
	LoanID  string               `json:"loanId"`
	Amount  float64              `json:"amount"`
	Method  domain.PaymentMethod `json:"method"`
}

// GetPayments lists payments newest first
func (s *PaymentService) GetPayments(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error) {
	if err := s.env.begin(ctx, "GetPayments"); err != nil {
		return nil, err
	}
	payments, err := s.repos.Payments.List(ctx, func(p domain.Payment) bool {
		return filter.UserID == "" || p.PayerID == filter.UserID || p.PayeeID == filter.UserID
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(payments, func(p domain.Payment) time.Time { return p.CreatedAt }, filter.Limit), nil
}

// RecordPayment records a completed payment against an existing order or loan
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*domain.Payment, error) {
	if err := s.env.begin(ctx, "RecordPayment"); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, domain.Validationf("amount must be positive")
	}
	if input.OrderID == "" && input.LoanID == "" {
		return nil, domain.Validationf("payment must reference an order or a loan")
	}
	method := input.Method
	if method == "" {
		method = domain.PaymentACH
	}
	if !method.Valid() {
		return nil, domain.Validationf("invalid payment method %q", method)
	}

	if input.OrderID != "" {
		if _, err := s.repos.Orders.Get(ctx, input.OrderID); err != nil {
			return nil, notFoundAs(err, domain.ErrOrderNotFound, input.OrderID)
		}
	}
	if input.LoanID != "" {
		if _, err := s.repos.Loans.Get(ctx, input.LoanID); err != nil {
			return nil, notFoundAs(err, domain.ErrLoanNotFound, input.LoanID)
		}
	}
	for _, id := range []string{input.PayerID, input.PayeeID} {
		if _, err := s.repos.Users.Get(ctx, id); err != nil {
			return nil, notFoundAs(err, domain.ErrUserNotFound, id)
		}
	}

	payment, err := s.repos.Payments.Create(ctx, domain.Payment{
		ID:        s.env.newID(),
		PayerID:   input.PayerID,
		PayeeID:   input.PayeeID,
		OrderID:   input.OrderID,
		LoanID:    input.LoanID,
		Amount:    input.Amount,
		Method:    method,
		Status:    domain.PaymentCompleted,
		CreatedAt: s.env.now(),
	})
	if err != nil {
		return nil, err
	}

	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:   payment.PayeeID,
		Title:    "Payment received",
		Message:  fmt.Sprintf("Payment of $%.2f received via %s.", payment.Amount, payment.Method),
		Type:     domain.NotificationSuccess,
		Priority: domain.PriorityMedium,
		Category: domain.CategoryPayment,
	})
	return &payment, nil
}
