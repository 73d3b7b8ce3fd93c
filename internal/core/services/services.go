package services

import "procurehub/internal/config"

// Services is the full mock API surface
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Projects      *ProjectService
	Bids          *BidService
	Notifications *NotificationService
	Dashboard     *DashboardService
	Uploads       *UploadService
	Loans         *LoanService
	Supply        *SupplyService
	Payments      *PaymentService
}

// New wires every service over the same repositories and environment
func New(repos *Repositories, cfg *config.Config, env Env) *Services {
	notifications := NewNotificationService(repos, env)
	return &Services{
		Auth:          NewAuthService(repos, cfg, env),
		Users:         NewUserService(repos, env),
		Projects:      NewProjectService(repos, env),
		Bids:          NewBidService(repos, notifications, env),
		Notifications: notifications,
		Dashboard:     NewDashboardService(repos, env),
		Uploads:       NewUploadService(env),
		Loans:         NewLoanService(repos, notifications, env),
		Supply:        NewSupplyService(repos, notifications, env),
		Payments:      NewPaymentService(repos, notifications, env),
	}
}
