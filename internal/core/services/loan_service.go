package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"procurehub/internal/core/domain"
)

// DefaultInterestRate applies when an application does not quote one
const DefaultInterestRate = 7.5

// LoanService handles construction financing between borrowers and banks
type LoanService struct {
	repos         *Repositories
	notifications *NotificationService
	env           Env
}

// NewLoanService creates a new loan service
func NewLoanService(repos *Repositories, notifications *NotificationService, env Env) *LoanService {
	return &LoanService{repos: repos, notifications: notifications, env: env}
}

// LoanFilter narrows GetLoans
type LoanFilter struct {
	BankID     string
	BorrowerID string
	Statuses   []domain.LoanStatus
	Limit      int
}

// ApplyForLoanInput for a loan application
type ApplyForLoanInput struct {
	BorrowerID   string  `json:"borrowerId"`
	BankID       string  `json:"bankId"`
	ProjectID    string  `json:"projectId"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`
	Purpose      string  `json:"purpose"`
}

// GetLoans lists loans newest first
func (s *LoanService) GetLoans(ctx context.Context, filter LoanFilter) ([]domain.Loan, error) {
	if err := s.env.begin(ctx, "GetLoans"); err != nil {
		return nil, err
	}
	loans, err := s.repos.Loans.List(ctx, func(l domain.Loan) bool {
		if filter.BankID != "" && l.BankID != filter.BankID {
			return false
		}
		if filter.BorrowerID != "" && l.BorrowerID != filter.BorrowerID {
			return false
		}
		return containsStatus(filter.Statuses, l.Status)
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(loans, func(l domain.Loan) time.Time { return l.CreatedAt }, filter.Limit), nil
}

// GetLoan gets a loan by ID
func (s *LoanService) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	if err := s.env.begin(ctx, "GetLoan"); err != nil {
		return nil, err
	}
	l, err := s.repos.Loans.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrLoanNotFound, id)
	}
	return &l, nil
}

// ApplyForLoan files a pending application with a bank and notifies it
func (s *LoanService) ApplyForLoan(ctx context.Context, input ApplyForLoanInput) (*domain.Loan, error) {
	if err := s.env.begin(ctx, "ApplyForLoan"); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, domain.Validationf("amount must be positive")
	}
	if input.TermMonths <= 0 {
		return nil, domain.Validationf("termMonths must be positive")
	}
	if input.InterestRate < 0 {
		return nil, domain.Validationf("interestRate must not be negative")
	}

	borrower, err := s.repos.Users.Get(ctx, input.BorrowerID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.BorrowerID)
	}
	bank, err := s.repos.Users.Get(ctx, input.BankID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.BankID)
	}
	if bank.Role != domain.RoleBank {
		return nil, domain.Validationf("user %s is not a bank", bank.ID)
	}
	if input.ProjectID != "" {
		if _, err := s.repos.Projects.Get(ctx, input.ProjectID); err != nil {
			return nil, notFoundAs(err, domain.ErrProjectNotFound, input.ProjectID)
		}
	}

	rate := input.InterestRate
	if rate == 0 {
		rate = DefaultInterestRate
	}
	now := s.env.now()
	loan, err := s.repos.Loans.Create(ctx, domain.Loan{
		ID:           s.env.newID(),
		BorrowerID:   borrower.ID,
		BankID:       bank.ID,
		ProjectID:    input.ProjectID,
		Amount:       input.Amount,
		InterestRate: rate,
		TermMonths:   input.TermMonths,
		Purpose:      strings.TrimSpace(input.Purpose),
		Status:       domain.LoanPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	applicant := borrower.Company
	if applicant == "" {
		applicant = borrower.Name
	}
	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    bank.ID,
		Title:     "New loan application",
		Message:   fmt.Sprintf("%s applied for $%.2f.", applicant, loan.Amount),
		Type:      domain.NotificationInfo,
		Priority:  domain.PriorityHigh,
		Category:  domain.CategoryPayment,
		ActionURL: "/loans/" + loan.ID,
	})
	return &loan, nil
}

// DecideLoan approves or rejects a pending loan and notifies the borrower
func (s *LoanService) DecideLoan(ctx context.Context, id string, approve bool) (*domain.Loan, error) {
	if err := s.env.begin(ctx, "DecideLoan"); err != nil {
		return nil, err
	}
	next := domain.LoanRejected
	if approve {
		next = domain.LoanApproved
	}

	loan, err := s.repos.Loans.Update(ctx, id, func(l *domain.Loan) error {
		if l.Status != domain.LoanPending {
			return fmt.Errorf("%w: loan %s is %s", domain.ErrInvalidTransition, l.ID, l.Status)
		}
		l.Status = next
		l.UpdatedAt = s.env.now()
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrLoanNotFound, id)
	}

	title, kind := "Loan approved", domain.NotificationSuccess
	if !approve {
		title, kind = "Loan rejected", domain.NotificationWarning
	}
	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    loan.BorrowerID,
		Title:     title,
		Message:   fmt.Sprintf("Your application for $%.2f was %s.", loan.Amount, loan.Status),
		Type:      kind,
		Priority:  domain.PriorityHigh,
		Category:  domain.CategoryPayment,
		ActionURL: "/loans/" + loan.ID,
	})
	return &loan, nil
}
