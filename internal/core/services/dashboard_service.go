package services

import (
	"context"

	"procurehub/internal/core/domain"
)

// RecentBidsLimit is how many bids the GC dashboard shows
const RecentBidsLimit = 5

// DashboardService builds per-role dashboard summaries
type DashboardService struct {
	repos *Repositories
	env   Env
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *Repositories, env Env) *DashboardService {
	return &DashboardService{repos: repos, env: env}
}

// DashboardData holds the summary for one role. Only the block for Role is set.
type DashboardData struct {
	Role                domain.Role             `json:"role"`
	UnreadNotifications int                     `json:"unreadNotifications"`
	GC                  *GCDashboard            `json:"gc,omitempty"`
	Subcontractor       *SubcontractorDashboard `json:"subcontractor,omitempty"`
	Supplier            *SupplierDashboard      `json:"supplier,omitempty"`
	Bank                *BankDashboard          `json:"bank,omitempty"`
	Admin               *AdminDashboard         `json:"admin,omitempty"`
}

// GCDashboard summarizes a general contractor's projects and incoming bids
type GCDashboard struct {
	TotalProjects  int          `json:"totalProjects"`
	ActiveProjects int          `json:"activeProjects"`
	TotalBids      int          `json:"totalBids"`
	PendingBids    int          `json:"pendingBids"`
	RecentBids     []domain.Bid `json:"recentBids"`
	TotalBudget    float64      `json:"totalBudget"`
}

// SubcontractorDashboard summarizes a subcontractor's bidding
type SubcontractorDashboard struct {
	TotalBids    int     `json:"totalBids"`
	PendingBids  int     `json:"pendingBids"`
	AwardedBids  int     `json:"awardedBids"`
	RejectedBids int     `json:"rejectedBids"`
	Earnings     float64 `json:"earnings"`
	WinRate      float64 `json:"winRate"`
	OpenProjects int     `json:"openProjects"`
}

// SupplierDashboard summarizes a supplier's orders and stock
type SupplierDashboard struct {
	TotalOrders    int     `json:"totalOrders"`
	PendingOrders  int     `json:"pendingOrders"`
	Revenue        float64 `json:"revenue"`
	InventoryItems int     `json:"inventoryItems"`
	LowStockItems  int     `json:"lowStockItems"`
}

// BankDashboard summarizes a bank's loan book
type BankDashboard struct {
	TotalLoans     int     `json:"totalLoans"`
	PendingLoans   int     `json:"pendingLoans"`
	ActiveLoans    int     `json:"activeLoans"`
	TotalDisbursed float64 `json:"totalDisbursed"`
	PortfolioValue float64 `json:"portfolioValue"`
}

// AdminDashboard holds platform-wide counts
type AdminDashboard struct {
	UsersByRole   map[domain.Role]int `json:"usersByRole"`
	TotalUsers    int                 `json:"totalUsers"`
	TotalProjects int                 `json:"totalProjects"`
	TotalBids     int                 `json:"totalBids"`
	TotalLoans    int                 `json:"totalLoans"`
	TotalOrders   int                 `json:"totalOrders"`
}

// GetDashboardData returns the dashboard of userID, who must hold role
func (s *DashboardService) GetDashboardData(ctx context.Context, userID string, role domain.Role) (*DashboardData, error) {
	if err := s.env.begin(ctx, "GetDashboardData"); err != nil {
		return nil, err
	}

	user, err := s.repos.Users.Get(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, userID)
	}
	if user.Role != role {
		return nil, domain.ErrForbidden
	}

	data := &DashboardData{Role: role}
	switch role {
	case domain.RoleGC:
		data.GC, err = s.gcDashboard(ctx, userID)
	case domain.RoleSubcontractor:
		data.Subcontractor, err = s.subcontractorDashboard(ctx, userID)
	case domain.RoleSupplier:
		data.Supplier, err = s.supplierDashboard(ctx, userID)
	case domain.RoleBank:
		data.Bank, err = s.bankDashboard(ctx, userID)
	case domain.RoleAdmin:
		data.Admin, err = s.adminDashboard(ctx)
	default:
		return nil, domain.Validationf("invalid role %q", role)
	}
	if err != nil {
		return nil, err
	}

	unread, err := s.repos.Notifications.List(ctx, func(n domain.Notification) bool {
		return n.UserID == userID && !n.Read
	})
	if err != nil {
		return nil, err
	}
	data.UnreadNotifications = len(unread)
	return data, nil
}

func (s *DashboardService) gcDashboard(ctx context.Context, gcID string) (*GCDashboard, error) {
	projects, err := s.repos.Projects.List(ctx, func(p domain.Project) bool { return p.GCID == gcID })
	if err != nil {
		return nil, err
	}

	d := &GCDashboard{TotalProjects: len(projects), RecentBids: []domain.Bid{}}
	owned := make(map[string]bool, len(projects))
	for _, p := range projects {
		owned[p.ID] = true
		d.TotalBudget += p.EstimatedCost
		if p.Status.AcceptsBids() {
			d.ActiveProjects++
		}
	}

	bids, err := s.repos.Bids.List(ctx, func(b domain.Bid) bool { return owned[b.ProjectID] })
	if err != nil {
		return nil, err
	}
	d.TotalBids = len(bids)
	for _, b := range bids {
		if b.Status == domain.BidPending {
			d.PendingBids++
		}
	}
	d.RecentBids = newestFirst(bids, bidTime, RecentBidsLimit)
	return d, nil
}

func (s *DashboardService) subcontractorDashboard(ctx context.Context, subID string) (*SubcontractorDashboard, error) {
	bids, err := s.repos.Bids.List(ctx, func(b domain.Bid) bool { return b.SubcontractorID == subID })
	if err != nil {
		return nil, err
	}

	d := &SubcontractorDashboard{TotalBids: len(bids)}
	for _, b := range bids {
		switch b.Status {
		case domain.BidPending:
			d.PendingBids++
		case domain.BidAwarded:
			d.AwardedBids++
			d.Earnings += b.Amount
		case domain.BidRejected:
			d.RejectedBids++
		}
	}
	if decided := d.AwardedBids + d.RejectedBids; decided > 0 {
		d.WinRate = float64(d.AwardedBids) / float64(decided)
	}

	open, err := s.repos.Projects.List(ctx, func(p domain.Project) bool { return p.Status == domain.ProjectBidding })
	if err != nil {
		return nil, err
	}
	d.OpenProjects = len(open)
	return d, nil
}

func (s *DashboardService) supplierDashboard(ctx context.Context, supplierID string) (*SupplierDashboard, error) {
	orders, err := s.repos.Orders.List(ctx, func(o domain.Order) bool { return o.SupplierID == supplierID })
	if err != nil {
		return nil, err
	}
	items, err := s.repos.Inventory.List(ctx, func(i domain.InventoryItem) bool { return i.SupplierID == supplierID })
	if err != nil {
		return nil, err
	}

	d := &SupplierDashboard{TotalOrders: len(orders), InventoryItems: len(items)}
	for _, o := range orders {
		switch o.Status {
		case domain.OrderPending:
			d.PendingOrders++
		case domain.OrderDelivered:
			d.Revenue += o.Total
		}
	}
	for _, i := range items {
		if i.LowStock() {
			d.LowStockItems++
		}
	}
	return d, nil
}

func (s *DashboardService) bankDashboard(ctx context.Context, bankID string) (*BankDashboard, error) {
	loans, err := s.repos.Loans.List(ctx, func(l domain.Loan) bool { return l.BankID == bankID })
	if err != nil {
		return nil, err
	}

	d := &BankDashboard{TotalLoans: len(loans)}
	for _, l := range loans {
		switch l.Status {
		case domain.LoanPending:
			d.PendingLoans++
		case domain.LoanActive:
			d.ActiveLoans++
			d.PortfolioValue += l.Amount
		}
		if l.Status.Disbursed() {
			d.TotalDisbursed += l.Amount
		}
	}
	return d, nil
}

func (s *DashboardService) adminDashboard(ctx context.Context) (*AdminDashboard, error) {
	users, err := s.repos.Users.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	d := &AdminDashboard{UsersByRole: map[domain.Role]int{}, TotalUsers: len(users)}
	for _, r := range domain.Roles {
		d.UsersByRole[r] = 0
	}
	for _, u := range users {
		d.UsersByRole[u.Role]++
	}

	counts := []struct {
		dst  *int
		list func() (int, error)
	}{
		{&d.TotalProjects, func() (int, error) { v, err := s.repos.Projects.List(ctx, nil); return len(v), err }},
		{&d.TotalBids, func() (int, error) { v, err := s.repos.Bids.List(ctx, nil); return len(v), err }},
		{&d.TotalLoans, func() (int, error) { v, err := s.repos.Loans.List(ctx, nil); return len(v), err }},
		{&d.TotalOrders, func() (int, error) { v, err := s.repos.Orders.List(ctx, nil); return len(v), err }},
	}
	for _, c := range counts {
		n, err := c.list()
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return d, nil
}
