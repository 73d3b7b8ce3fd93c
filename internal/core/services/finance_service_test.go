package services

import (
	"testing"

	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoanService_ApplyAndDecide(t *testing.T) {
	f := newFixture(t)

	loan, err := f.svc.Loans.ApplyForLoan(f.ctx, ApplyForLoanInput{
		BorrowerID: "gc-2",
		BankID:     "bank-1",
		ProjectID:  "proj-3",
		Amount:     1_000_000,
		TermMonths: 18,
		Purpose:    "Bridge financing",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.LoanPending, loan.Status)
	assert.Equal(t, DefaultInterestRate, loan.InterestRate)

	bank := f.notificationsFor(t, "bank-1")
	require.NotEmpty(t, bank)
	assert.Equal(t, "/loans/"+loan.ID, bank[0].ActionURL)

	decided, err := f.svc.Loans.DecideLoan(f.ctx, loan.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanApproved, decided.Status)

	_, err = f.svc.Loans.DecideLoan(f.ctx, loan.ID, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	borrower := f.notificationsFor(t, "gc-2")
	require.NotEmpty(t, borrower)
	assert.Equal(t, "Loan approved", borrower[0].Title)

	pending, err := f.svc.Loans.GetLoans(f.ctx, LoanFilter{BankID: "bank-1", Statuses: []domain.LoanStatus{domain.LoanPending}})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "loan-2", pending[0].ID)
}

func TestLoanService_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input ApplyForLoanInput
		want  error
	}{
		{"zero amount", ApplyForLoanInput{BorrowerID: "gc-1", BankID: "bank-1", TermMonths: 12}, domain.ErrValidation},
		{"zero term", ApplyForLoanInput{BorrowerID: "gc-1", BankID: "bank-1", Amount: 10}, domain.ErrValidation},
		{"not a bank", ApplyForLoanInput{BorrowerID: "gc-1", BankID: "gc-2", Amount: 10, TermMonths: 12}, domain.ErrValidation},
		{"unknown borrower", ApplyForLoanInput{BorrowerID: "ghost", BankID: "bank-1", Amount: 10, TermMonths: 12}, domain.ErrUserNotFound},
		{"unknown project", ApplyForLoanInput{BorrowerID: "gc-1", BankID: "bank-1", ProjectID: "nope", Amount: 10, TermMonths: 12}, domain.ErrProjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Loans.ApplyForLoan(f.ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.svc.Loans.DecideLoan(f.ctx, "missing", true)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestPaymentService_RecordPayment(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.Payments.RecordPayment(f.ctx, RecordPaymentInput{
		PayerID: "sub-4",
		PayeeID: "sup-1",
		OrderID: "order-2",
		Amount:  1640,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentACH, p.Method)
	assert.Equal(t, domain.PaymentCompleted, p.Status)

	payments, err := f.svc.Payments.GetPayments(f.ctx, PaymentFilter{UserID: "sup-1"})
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, p.ID, payments[0].ID)

	payee := f.notificationsFor(t, "sup-1")
	require.NotEmpty(t, payee)
	assert.Equal(t, "Payment received", payee[0].Title)
}

func TestPaymentService_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input RecordPaymentInput
		want  error
	}{
		{"no reference", RecordPaymentInput{PayerID: "gc-1", PayeeID: "sup-1", Amount: 1}, domain.ErrValidation},
		{"zero amount", RecordPaymentInput{PayerID: "gc-1", PayeeID: "sup-1", OrderID: "order-1"}, domain.ErrValidation},
		{"bad method", RecordPaymentInput{PayerID: "gc-1", PayeeID: "sup-1", OrderID: "order-1", Amount: 1, Method: "cash"}, domain.ErrValidation},
		{"unknown order", RecordPaymentInput{PayerID: "gc-1", PayeeID: "sup-1", OrderID: "nope", Amount: 1}, domain.ErrOrderNotFound},
		{"unknown loan", RecordPaymentInput{PayerID: "gc-1", PayeeID: "bank-1", LoanID: "nope", Amount: 1}, domain.ErrLoanNotFound},
		{"unknown payee", RecordPaymentInput{PayerID: "gc-1", PayeeID: "ghost", LoanID: "loan-1", Amount: 1}, domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Payments.RecordPayment(f.ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
