package config

import (
	"time"

	"procurehub/internal/core/datagen"
	"procurehub/internal/core/domain"
)

// StaticDataset returns the curated demo data with dates relative to now
func StaticDataset(now time.Time) *datagen.Dataset {
	now = now.Truncate(time.Second)
	daysAgo := func(d int) time.Time { return now.AddDate(0, 0, -d) }

	users := []domain.User{
		{ID: "gc-1", Email: "sarah.mitchell@summitbuilders.com", Phone: "+1-555-201-1001", Role: domain.RoleGC, Name: "Sarah Mitchell", Company: "Summit Builders", Verified: true, CreatedAt: daysAgo(170)},
		{ID: "gc-2", Email: "david.chen@ironclad.com", Phone: "+1-555-201-1002", Role: domain.RoleGC, Name: "David Chen", Company: "Ironclad Construction", Verified: true, CreatedAt: daysAgo(150)},
		{ID: "sub-1", Email: "mike.johnson@precisionelectric.com", Phone: "+1-555-301-2001", Role: domain.RoleSubcontractor, Name: "Mike Johnson", Company: "Precision Electric", Verified: true, CreatedAt: daysAgo(160)},
		{ID: "sub-2", Email: "ana.garcia@aquaflow.com", Phone: "+1-555-301-2002", Role: domain.RoleSubcontractor, Name: "Ana Garcia", Company: "AquaFlow Plumbing", Verified: true, CreatedAt: daysAgo(140)},
		{ID: "sub-3", Email: "tom.okafor@apexhvac.com", Phone: "+1-555-301-2003", Role: domain.RoleSubcontractor, Name: "Tom Okafor", Company: "Apex HVAC Services", Verified: false, CreatedAt: daysAgo(90)},
		{ID: "sub-4", Email: "lisa.patel@granitecw.com", Phone: "+1-555-301-2004", Role: domain.RoleSubcontractor, Name: "Lisa Patel", Company: "Granite Concrete Works", Verified: true, CreatedAt: daysAgo(120)},
		{ID: "sup-1", Email: "orders@buildmart.com", Phone: "+1-555-401-3001", Role: domain.RoleSupplier, Name: "Greg Walker", Company: "BuildMart Supply", Verified: true, CreatedAt: daysAgo(175)},
		{ID: "bank-1", Email: "lending@firstbuilders.com", Phone: "+1-555-501-4001", Role: domain.RoleBank, Name: "Emily Rossi", Company: "First Builders Bank", Verified: true, CreatedAt: daysAgo(178)},
		{ID: "admin-1", Email: "admin@procurehub.io", Role: domain.RoleAdmin, Name: "Platform Admin", Company: "ProcureHub", Verified: true, CreatedAt: daysAgo(180)},
	}

	projects := []domain.Project{
		{
			ID: "proj-1", Name: "Riverside Office Complex", GCID: "gc-1", Status: domain.ProjectBidding,
			Description:   "Four-story office building with underground parking and full MEP package.",
			EstimatedCost: 2_500_000, Timeline: "12 months", Location: "Austin, TX",
			PlanFiles: []domain.PlanFile{
				{ID: "file-1", Name: "riverside-architectural.pdf", Type: "application/pdf", Size: 4_200_000, URL: "/uploads/file-1/riverside-architectural.pdf", Category: "plans", UploadedAt: daysAgo(44)},
				{ID: "file-2", Name: "riverside-electrical.dwg", Type: "image/vnd.dwg", Size: 2_800_000, URL: "/uploads/file-2/riverside-electrical.dwg", Category: "electrical", UploadedAt: daysAgo(43)},
			},
			CreatedAt: daysAgo(45), UpdatedAt: daysAgo(20),
		},
		{
			ID: "proj-2", Name: "Downtown Medical Center", GCID: "gc-1", Status: domain.ProjectAwarded,
			Description:   "Interior renovation of two clinic floors with medical gas and HVAC upgrades.",
			EstimatedCost: 1_200_000, Timeline: "9 months", Location: "Austin, TX",
			PlanFiles:     []domain.PlanFile{},
			CreatedAt:     daysAgo(100), UpdatedAt: daysAgo(60),
		},
		{
			ID: "proj-3", Name: "Harbor View Apartments", GCID: "gc-2", Status: domain.ProjectActive,
			Description:   "Mixed-use development with retail podium and four residential levels.",
			EstimatedCost: 4_800_000, Timeline: "18 months", Location: "Portland, OR",
			PlanFiles:     []domain.PlanFile{},
			CreatedAt:     daysAgo(30), UpdatedAt: daysAgo(12),
		},
		{
			ID: "proj-4", Name: "Cedar Park Warehouse", GCID: "gc-2", Status: domain.ProjectDraft,
			Description:   "Tilt-up concrete shell with office build-out and loading docks.",
			EstimatedCost: 900_000, Timeline: "24 weeks", Location: "Cedar Park, TX",
			PlanFiles:     []domain.PlanFile{},
			CreatedAt:     daysAgo(5), UpdatedAt: daysAgo(5),
		},
	}

	electric := &domain.ContractorSnapshot{ID: "sub-1", Name: "Precision Electric", Rating: 4.8, CompletedProjects: 67, OnTimeRate: 96, Specializations: []string{"Electrical", "Fire Protection"}}
	plumbing := &domain.ContractorSnapshot{ID: "sub-2", Name: "AquaFlow Plumbing", Rating: 4.5, CompletedProjects: 42, OnTimeRate: 91, Specializations: []string{"Plumbing"}}
	hvac := &domain.ContractorSnapshot{ID: "sub-3", Name: "Apex HVAC Services", Rating: 4.1, CompletedProjects: 18, OnTimeRate: 88, Specializations: []string{"HVAC"}}
	concrete := &domain.ContractorSnapshot{ID: "sub-4", Name: "Granite Concrete Works", Rating: 4.6, CompletedProjects: 85, OnTimeRate: 93, Specializations: []string{"Concrete", "Masonry"}}

	bids := []domain.Bid{
		{ID: "bid-1", ProjectID: "proj-1", SubcontractorID: "sub-1", Amount: 450_000, Timeline: "10 weeks", Description: "Complete electrical installation including service entrance and lighting.", Status: domain.BidPending, Contractor: electric, SubmittedAt: daysAgo(18)},
		{ID: "bid-2", ProjectID: "proj-1", SubcontractorID: "sub-2", Amount: 320_000, Timeline: "8 weeks", Description: "Domestic water, sanitary and storm piping per drawings.", Status: domain.BidPending, Contractor: plumbing, SubmittedAt: daysAgo(15)},
		{ID: "bid-3", ProjectID: "proj-1", SubcontractorID: "sub-3", Amount: 510_000, Timeline: "3 months", Description: "Rooftop units, ductwork and controls.", Status: domain.BidPending, Contractor: hvac, SubmittedAt: daysAgo(10)},
		{ID: "bid-4", ProjectID: "proj-2", SubcontractorID: "sub-3", Amount: 280_000, Timeline: "6 weeks", Description: "HVAC upgrade with medical-grade filtration.", Status: domain.BidAwarded, Contractor: hvac, SubmittedAt: daysAgo(80)},
		{ID: "bid-5", ProjectID: "proj-2", SubcontractorID: "sub-1", Amount: 310_000, Timeline: "8 weeks", Description: "Electrical and nurse-call systems.", Status: domain.BidRejected, Contractor: electric, SubmittedAt: daysAgo(78)},
		{ID: "bid-6", ProjectID: "proj-3", SubcontractorID: "sub-4", Amount: 890_000, Timeline: "4 months", Description: "Foundations, podium slab and site concrete.", Status: domain.BidPending, Contractor: concrete, SubmittedAt: daysAgo(6)},
	}

	notifications := []domain.Notification{
		{ID: "notif-1", UserID: "gc-1", Title: "New bid received", Message: "Apex HVAC Services submitted a bid on Riverside Office Complex.", Type: domain.NotificationInfo, Priority: domain.PriorityMedium, Category: domain.CategoryBid, ActionURL: "/projects/proj-1/bids", CreatedAt: daysAgo(10)},
		{ID: "notif-2", UserID: "gc-1", Title: "New bid received", Message: "AquaFlow Plumbing submitted a bid on Riverside Office Complex.", Type: domain.NotificationInfo, Read: true, Priority: domain.PriorityMedium, Category: domain.CategoryBid, ActionURL: "/projects/proj-1/bids", CreatedAt: daysAgo(15)},
		{ID: "notif-3", UserID: "sub-3", Title: "Bid awarded", Message: "Your bid on Downtown Medical Center has been awarded.", Type: domain.NotificationSuccess, Priority: domain.PriorityHigh, Category: domain.CategoryBid, ActionURL: "/bids/bid-4", CreatedAt: daysAgo(60)},
		{ID: "notif-4", UserID: "sub-1", Title: "Bid not selected", Message: "Another bid was selected for Downtown Medical Center.", Type: domain.NotificationWarning, Read: true, Priority: domain.PriorityLow, Category: domain.CategoryBid, CreatedAt: daysAgo(60)},
		{ID: "notif-5", UserID: "gc-2", Title: "New bid received", Message: "Granite Concrete Works submitted a bid on Harbor View Apartments.", Type: domain.NotificationInfo, Priority: domain.PriorityMedium, Category: domain.CategoryBid, ActionURL: "/projects/proj-3/bids", CreatedAt: daysAgo(6)},
		{ID: "notif-6", UserID: "sup-1", Title: "Payment received", Message: "Payment of $4,301.40 received for order order-1.", Type: domain.NotificationSuccess, Priority: domain.PriorityMedium, Category: domain.CategoryPayment, CreatedAt: daysAgo(25)},
		{ID: "notif-7", UserID: "bank-1", Title: "New loan application", Message: "Summit Builders applied for a working capital line.", Type: domain.NotificationInfo, Priority: domain.PriorityHigh, Category: domain.CategoryPayment, ActionURL: "/loans/loan-2", CreatedAt: daysAgo(3)},
		{ID: "notif-8", UserID: "admin-1", Title: "Scheduled maintenance", Message: "The platform will be briefly unavailable tonight.", Type: domain.NotificationWarning, Priority: domain.PriorityLow, Category: domain.CategorySystem, CreatedAt: daysAgo(1)},
	}

	inventory := []domain.InventoryItem{
		{ID: "item-1", SupplierID: "sup-1", SKU: "CEM-94", Name: "Portland Cement 94lb", Category: "Concrete", Unit: "bag", Quantity: 420, UnitPrice: 14.25, ReorderLevel: 100, UpdatedAt: daysAgo(2)},
		{ID: "item-2", SupplierID: "sup-1", SKU: "RB4-20", Name: "Rebar #4 20ft", Category: "Steel", Unit: "piece", Quantity: 35, UnitPrice: 11.80, ReorderLevel: 50, UpdatedAt: daysAgo(4)},
		{ID: "item-3", SupplierID: "sup-1", SKU: "STD-248", Name: "2x4 Stud 8ft", Category: "Lumber", Unit: "piece", Quantity: 1200, UnitPrice: 4.10, ReorderLevel: 300, UpdatedAt: daysAgo(1)},
		{ID: "item-4", SupplierID: "sup-1", SKU: "DW-48", Name: "Drywall Sheet 4x8", Category: "Drywall", Unit: "sheet", Quantity: 20, UnitPrice: 13.50, ReorderLevel: 40, UpdatedAt: daysAgo(7)},
	}

	order1Lines := []domain.OrderLine{
		{ItemID: "item-1", Name: "Portland Cement 94lb", Quantity: 200, UnitPrice: 14.25},
		{ItemID: "item-2", Name: "Rebar #4 20ft", Quantity: 123, UnitPrice: 11.80},
	}
	order2Lines := []domain.OrderLine{
		{ItemID: "item-3", Name: "2x4 Stud 8ft", Quantity: 400, UnitPrice: 4.10},
	}
	orders := []domain.Order{
		{ID: "order-1", SupplierID: "sup-1", BuyerID: "gc-1", ProjectID: "proj-2", Items: order1Lines, Total: domain.OrderTotal(order1Lines), Status: domain.OrderDelivered, CreatedAt: daysAgo(35), UpdatedAt: daysAgo(26)},
		{ID: "order-2", SupplierID: "sup-1", BuyerID: "sub-4", ProjectID: "proj-3", Items: order2Lines, Total: domain.OrderTotal(order2Lines), Status: domain.OrderPending, CreatedAt: daysAgo(2), UpdatedAt: daysAgo(2)},
	}

	payments := []domain.Payment{
		{ID: "pay-1", PayerID: "gc-1", PayeeID: "sup-1", OrderID: "order-1", Amount: orders[0].Total, Method: domain.PaymentACH, Status: domain.PaymentCompleted, CreatedAt: daysAgo(25)},
	}

	loans := []domain.Loan{
		{ID: "loan-1", BorrowerID: "gc-1", BankID: "bank-1", ProjectID: "proj-2", Amount: 500_000, InterestRate: 6.75, TermMonths: 24, Purpose: "Construction-to-permanent financing", Status: domain.LoanActive, CreatedAt: daysAgo(95), UpdatedAt: daysAgo(88)},
		{ID: "loan-2", BorrowerID: "gc-1", BankID: "bank-1", ProjectID: "proj-1", Amount: 250_000, InterestRate: 7.25, TermMonths: 12, Purpose: "Working capital line", Status: domain.LoanPending, CreatedAt: daysAgo(3), UpdatedAt: daysAgo(3)},
		{ID: "loan-3", BorrowerID: "sub-1", BankID: "bank-1", Amount: 80_000, InterestRate: 8.9, TermMonths: 36, Purpose: "Equipment financing", Status: domain.LoanRepaid, CreatedAt: daysAgo(170), UpdatedAt: daysAgo(20)},
	}

	return &datagen.Dataset{
		Users:         users,
		Projects:      projects,
		Bids:          bids,
		Notifications: notifications,
		Loans:         loans,
		Orders:        orders,
		Payments:      payments,
		Inventory:     inventory,
	}
}
