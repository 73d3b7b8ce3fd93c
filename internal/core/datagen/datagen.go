// Package datagen produces randomized but shape-valid marketplace data for demos and tests.
// A Generator is deterministic for a given seed and clock.
package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"procurehub/internal/core/domain"

	"github.com/google/uuid"
)

// Options control the size of a generated dataset.
// Zero values fall back to DefaultOptions.
type Options struct {
	NumGCs               int
	NumSubcontractors    int
	NumSuppliers         int
	NumBanks             int
	ProjectsPerGC        int
	BidsPerProject       int
	NotificationsPerUser int
	ItemsPerSupplier     int
	OrdersPerSupplier    int
	LoansPerBank         int
	IncludeAdmin         bool
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{
		NumGCs:               3,
		NumSubcontractors:    8,
		NumSuppliers:         2,
		NumBanks:             2,
		ProjectsPerGC:        3,
		BidsPerProject:       3,
		NotificationsPerUser: 5,
		ItemsPerSupplier:     4,
		OrdersPerSupplier:    2,
		LoansPerBank:         2,
		IncludeAdmin:         true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	pick := func(v, def int) int {
		if v <= 0 {
			return def
		}
		return v
	}
	o.NumGCs = pick(o.NumGCs, d.NumGCs)
	o.NumSubcontractors = pick(o.NumSubcontractors, d.NumSubcontractors)
	o.NumSuppliers = pick(o.NumSuppliers, d.NumSuppliers)
	o.NumBanks = pick(o.NumBanks, d.NumBanks)
	o.ProjectsPerGC = pick(o.ProjectsPerGC, d.ProjectsPerGC)
	o.BidsPerProject = pick(o.BidsPerProject, d.BidsPerProject)
	o.NotificationsPerUser = pick(o.NotificationsPerUser, d.NotificationsPerUser)
	o.ItemsPerSupplier = pick(o.ItemsPerSupplier, d.ItemsPerSupplier)
	o.OrdersPerSupplier = pick(o.OrdersPerSupplier, d.OrdersPerSupplier)
	o.LoansPerBank = pick(o.LoansPerBank, d.LoansPerBank)
	return o
}

// Dataset is a referentially consistent graph of generated entities
type Dataset struct {
	Users         []domain.User          `json:"users"`
	Projects      []domain.Project       `json:"projects"`
	Bids          []domain.Bid           `json:"bids"`
	Notifications []domain.Notification  `json:"notifications"`
	Loans         []domain.Loan          `json:"loans"`
	Orders        []domain.Order         `json:"orders"`
	Payments      []domain.Payment       `json:"payments"`
	Inventory     []domain.InventoryItem `json:"inventory"`
}

// Generator draws every random value, id and date from one seeded source
type Generator struct {
	rng *rand.Rand
	Now func() time.Time
	// Window is how far back generated dates may go
	Window time.Duration
}

// New creates a generator seeded with seed
func New(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		Now:    time.Now,
		Window: 180 * 24 * time.Hour,
	}
}

func (g *Generator) id() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand never fails to read
		panic(err)
	}
	return id.String()
}

func pickOne[T any](g *Generator, pool []T) T {
	return pool[g.rng.Intn(len(pool))]
}

func (g *Generator) between(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func (g *Generator) intBetween(min, max int) int {
	return min + g.rng.Intn(max-min+1)
}

// dateBetween returns a uniform random time in [from, to]
func (g *Generator) dateBetween(from, to time.Time) time.Time {
	if !to.After(from) {
		return from
	}
	span := to.Sub(from)
	return from.Add(time.Duration(g.rng.Int63n(int64(span)))).Truncate(time.Second)
}

func (g *Generator) recent() time.Time {
	now := g.Now()
	return g.dateBetween(now.Add(-g.Window), now)
}

func roundTo(v float64, step float64) float64 {
	return math.Round(v/step) * step
}

// GenerateUser creates a user of the given role. index makes emails unique.
func (g *Generator) GenerateUser(role domain.Role, index int) domain.User {
	first := pickOne(g, firstNames)
	last := pickOne(g, lastNames)
	company := pickOne(g, companiesByRole[string(role)])
	return domain.User{
		ID:        g.id(),
		Email:     fmt.Sprintf("%s.%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), role, index+1),
		Phone:     fmt.Sprintf("+1-555-%03d-%04d", g.rng.Intn(1000), g.rng.Intn(10000)),
		Role:      role,
		Name:      first + " " + last,
		Company:   company,
		Verified:  g.rng.Float64() < 0.8,
		CreatedAt: g.recent(),
	}
}

// GenerateProject creates a project owned by gcID
func (g *Generator) GenerateProject(gcID string, index int) domain.Project {
	created := g.recent()
	statuses := []domain.ProjectStatus{
		domain.ProjectDraft, domain.ProjectActive, domain.ProjectBidding,
		domain.ProjectBidding, domain.ProjectAwarded, domain.ProjectCompleted,
	}
	name := pickOne(g, projectNames)
	if index > 0 {
		name = fmt.Sprintf("%s Phase %d", name, index+1)
	}
	p := domain.Project{
		ID:            g.id(),
		Name:          name,
		Description:   pickOne(g, projectDescriptions),
		GCID:          gcID,
		Status:        pickOne(g, statuses),
		PlanFiles:     []domain.PlanFile{},
		EstimatedCost: roundTo(g.between(100_000, 5_000_000), 1000),
		Timeline:      pickOne(g, projectTimelines),
		Location:      pickOne(g, locations),
		CreatedAt:     created,
	}
	p.UpdatedAt = g.dateBetween(created, g.Now())

	for i := 0; i < g.rng.Intn(3); i++ {
		fid := g.id()
		fname := fmt.Sprintf("sheet-A%d%02d.pdf", i+1, g.rng.Intn(100))
		p.PlanFiles = append(p.PlanFiles, domain.PlanFile{
			ID:         fid,
			Name:       fname,
			Type:       "application/pdf",
			Size:       int64(g.intBetween(200_000, 9_000_000)),
			URL:        "/uploads/" + fid + "/" + fname,
			Category:   "plans",
			UploadedAt: g.dateBetween(created, p.UpdatedAt),
		})
	}
	return p
}

// GenerateContractor creates the snapshot of a subcontractor as shown in bid review
func (g *Generator) GenerateContractor(sub domain.User) *domain.ContractorSnapshot {
	n := g.intBetween(1, 3)
	specs := make([]string, 0, n)
	seen := map[string]bool{}
	for len(specs) < n {
		s := pickOne(g, specializations)
		if !seen[s] {
			seen[s] = true
			specs = append(specs, s)
		}
	}
	name := sub.Company
	if name == "" {
		name = sub.Name
	}
	return &domain.ContractorSnapshot{
		ID:                sub.ID,
		Name:              name,
		Rating:            math.Round(g.between(3.0, 5.0)*10) / 10,
		CompletedProjects: g.intBetween(3, 150),
		OnTimeRate:        math.Round(g.between(70, 100)),
		Specializations:   specs,
	}
}

// GenerateBid creates a pending bid with a contractor snapshot for subcontractorID
func (g *Generator) GenerateBid(projectID, subcontractorID string, index int) domain.Bid {
	return domain.Bid{
		ID:              g.id(),
		ProjectID:       projectID,
		SubcontractorID: subcontractorID,
		Amount:          roundTo(g.between(20_000, 4_000_000), 100),
		Timeline:        pickOne(g, bidTimelines),
		Description:     pickOne(g, bidDescriptions),
		Status:          domain.BidPending,
		Contractor: g.GenerateContractor(domain.User{
			ID:      subcontractorID,
			Company: pickOne(g, companiesByRole[string(domain.RoleSubcontractor)]),
		}),
		SubmittedAt: g.recent(),
	}
}

// GenerateNotification creates a notification for userID
func (g *Generator) GenerateNotification(userID string, index int) domain.Notification {
	tpl := pickOne(g, notificationTemplates)
	priorities := []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}
	return domain.Notification{
		ID:        g.id(),
		UserID:    userID,
		Title:     tpl.title,
		Message:   tpl.message,
		Type:      domain.NotificationType(tpl.kind),
		Read:      g.rng.Float64() < 0.4,
		Priority:  pickOne(g, priorities),
		Category:  domain.NotificationCategory(tpl.category),
		CreatedAt: g.recent(),
	}
}

// GenerateInventoryItem creates a stocked item for supplierID
func (g *Generator) GenerateInventoryItem(supplierID string, index int) domain.InventoryItem {
	c := inventoryCatalog[index%len(inventoryCatalog)]
	return domain.InventoryItem{
		ID:           g.id(),
		SupplierID:   supplierID,
		SKU:          fmt.Sprintf("SKU-%05d", g.rng.Intn(100000)),
		Name:         c.name,
		Category:     c.category,
		Unit:         c.unit,
		Quantity:     g.intBetween(0, 500),
		UnitPrice:    math.Round(g.between(c.minPrice, c.maxPrice)*100) / 100,
		ReorderLevel: g.intBetween(10, 50),
		UpdatedAt:    g.recent(),
	}
}

// GenerateOrder creates an order from up to three items of one supplier
func (g *Generator) GenerateOrder(supplierID, buyerID, projectID string, items []domain.InventoryItem) domain.Order {
	n := g.intBetween(1, 3)
	if n > len(items) {
		n = len(items)
	}
	lines := make([]domain.OrderLine, 0, n)
	for _, k := range g.rng.Perm(len(items))[:n] {
		it := items[k]
		lines = append(lines, domain.OrderLine{
			ItemID:    it.ID,
			Name:      it.Name,
			Quantity:  g.intBetween(1, 40),
			UnitPrice: it.UnitPrice,
		})
	}
	statuses := []domain.OrderStatus{
		domain.OrderPending, domain.OrderConfirmed, domain.OrderShipped,
		domain.OrderDelivered, domain.OrderDelivered, domain.OrderCancelled,
	}
	created := g.recent()
	return domain.Order{
		ID:         g.id(),
		SupplierID: supplierID,
		BuyerID:    buyerID,
		ProjectID:  projectID,
		Items:      lines,
		Total:      math.Round(domain.OrderTotal(lines)*100) / 100,
		Status:     pickOne(g, statuses),
		CreatedAt:  created,
		UpdatedAt:  g.dateBetween(created, g.Now()),
	}
}

// GenerateLoan creates a loan from bankID to borrowerID
func (g *Generator) GenerateLoan(bankID, borrowerID, projectID string) domain.Loan {
	statuses := []domain.LoanStatus{
		domain.LoanPending, domain.LoanApproved, domain.LoanActive,
		domain.LoanActive, domain.LoanRejected, domain.LoanRepaid,
	}
	created := g.recent()
	return domain.Loan{
		ID:           g.id(),
		BorrowerID:   borrowerID,
		BankID:       bankID,
		ProjectID:    projectID,
		Amount:       roundTo(g.between(50_000, 1_500_000), 1000),
		InterestRate: math.Round(g.between(4.5, 11.0)*100) / 100,
		TermMonths:   pickOne(g, []int{12, 24, 36, 60}),
		Purpose:      pickOne(g, loanPurposes),
		Status:       pickOne(g, statuses),
		CreatedAt:    created,
		UpdatedAt:    g.dateBetween(created, g.Now()),
	}
}

// GeneratePayment settles an order (buyer pays supplier)
func (g *Generator) GeneratePayment(order domain.Order) domain.Payment {
	methods := []domain.PaymentMethod{domain.PaymentACH, domain.PaymentWire, domain.PaymentCard, domain.PaymentCheck}
	return domain.Payment{
		ID:        g.id(),
		PayerID:   order.BuyerID,
		PayeeID:   order.SupplierID,
		OrderID:   order.ID,
		Amount:    order.Total,
		Method:    pickOne(g, methods),
		Status:    domain.PaymentCompleted,
		CreatedAt: g.dateBetween(order.CreatedAt, g.Now()),
	}
}

// GenerateCompleteDataset composes the generators into one consistent graph
func (g *Generator) GenerateCompleteDataset(opts Options) *Dataset {
	opts = opts.withDefaults()
	ds := &Dataset{}

	makeUsers := func(role domain.Role, n int) []domain.User {
		users := make([]domain.User, n)
		for i := range users {
			users[i] = g.GenerateUser(role, i)
		}
		ds.Users = append(ds.Users, users...)
		return users
	}

	gcs := makeUsers(domain.RoleGC, opts.NumGCs)
	subs := makeUsers(domain.RoleSubcontractor, opts.NumSubcontractors)
	suppliers := makeUsers(domain.RoleSupplier, opts.NumSuppliers)
	banks := makeUsers(domain.RoleBank, opts.NumBanks)
	if opts.IncludeAdmin {
		makeUsers(domain.RoleAdmin, 1)
	}

	contractors := make(map[string]*domain.ContractorSnapshot, len(subs))
	for _, s := range subs {
		contractors[s.ID] = g.GenerateContractor(s)
	}

	for _, gc := range gcs {
		for i := 0; i < opts.ProjectsPerGC; i++ {
			p := g.GenerateProject(gc.ID, i)
			ds.Projects = append(ds.Projects, p)
			if p.Status == domain.ProjectDraft {
				continue
			}

			n := opts.BidsPerProject
			if n > len(subs) {
				n = len(subs)
			}
			for j, k := range g.rng.Perm(len(subs))[:n] {
				sub := subs[k]
				b := g.GenerateBid(p.ID, sub.ID, j)
				snap := *contractors[sub.ID]
				b.Contractor = &snap
				b.Amount = roundTo(p.EstimatedCost*g.between(0.2, 0.8), 100)
				b.SubmittedAt = g.dateBetween(p.CreatedAt, g.Now())
				ds.Bids = append(ds.Bids, b)
			}
		}
	}
	markAwards(ds)

	buyers := append(append([]domain.User{}, gcs...), subs...)
	for _, sup := range suppliers {
		items := make([]domain.InventoryItem, opts.ItemsPerSupplier)
		for i := range items {
			items[i] = g.GenerateInventoryItem(sup.ID, i)
		}
		ds.Inventory = append(ds.Inventory, items...)

		for i := 0; i < opts.OrdersPerSupplier; i++ {
			buyer := pickOne(g, buyers)
			projectID := ""
			if len(ds.Projects) > 0 && g.rng.Float64() < 0.7 {
				projectID = pickOne(g, ds.Projects).ID
			}
			o := g.GenerateOrder(sup.ID, buyer.ID, projectID, items)
			ds.Orders = append(ds.Orders, o)
			if o.Status == domain.OrderDelivered {
				ds.Payments = append(ds.Payments, g.GeneratePayment(o))
			}
		}
	}

	for _, bank := range banks {
		for i := 0; i < opts.LoansPerBank; i++ {
			borrower := pickOne(g, buyers)
			projectID := ""
			if borrower.Role == domain.RoleGC {
				for _, p := range ds.Projects {
					if p.GCID == borrower.ID {
						projectID = p.ID
						break
					}
				}
			}
			ds.Loans = append(ds.Loans, g.GenerateLoan(bank.ID, borrower.ID, projectID))
		}
	}

	for _, u := range ds.Users {
		for i := 0; i < opts.NotificationsPerUser; i++ {
			ds.Notifications = append(ds.Notifications, g.GenerateNotification(u.ID, i))
		}
	}
	return ds
}

// markAwards settles bids of awarded/completed projects so each has exactly one winner
func markAwards(ds *Dataset) {
	byProject := map[string][]int{}
	for i, b := range ds.Bids {
		byProject[b.ProjectID] = append(byProject[b.ProjectID], i)
	}
	for _, p := range ds.Projects {
		if p.Status != domain.ProjectAwarded && p.Status != domain.ProjectCompleted {
			continue
		}
		idx := byProject[p.ID]
		if len(idx) == 0 {
			continue
		}
		winner := idx[0]
		for _, i := range idx[1:] {
			if ds.Bids[i].Amount < ds.Bids[winner].Amount {
				winner = i
			}
		}
		for _, i := range idx {
			if i == winner {
				ds.Bids[i].Status = domain.BidAwarded
			} else {
				ds.Bids[i].Status = domain.BidRejected
			}
		}
	}
}
