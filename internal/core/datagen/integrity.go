package datagen

import (
	"fmt"

	"procurehub/internal/core/domain"
)

// CheckIntegrity lists every dangling reference, role mismatch and
// inverted timestamp in ds. An empty result means the dataset is consistent.
func CheckIntegrity(ds *Dataset) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	users := make(map[string]domain.User, len(ds.Users))
	emails := make(map[string]bool, len(ds.Users))
	for _, u := range ds.Users {
		if _, dup := users[u.ID]; dup {
			fail("user %s: duplicate id", u.ID)
		}
		if emails[u.Email] {
			fail("user %s: duplicate email %s", u.ID, u.Email)
		}
		if !u.Role.Valid() {
			fail("user %s: invalid role %q", u.ID, u.Role)
		}
		users[u.ID] = u
		emails[u.Email] = true
	}

	hasRole := func(id string, role domain.Role) bool {
		u, ok := users[id]
		return ok && u.Role == role
	}

	projects := make(map[string]domain.Project, len(ds.Projects))
	for _, p := range ds.Projects {
		projects[p.ID] = p
		if !hasRole(p.GCID, domain.RoleGC) {
			fail("project %s: gcId %s is not a gc user", p.ID, p.GCID)
		}
		if p.UpdatedAt.Before(p.CreatedAt) {
			fail("project %s: updatedAt before createdAt", p.ID)
		}
		if p.EstimatedCost < 0 {
			fail("project %s: negative estimated cost", p.ID)
		}
	}

	awarded := map[string]int{}
	for _, b := range ds.Bids {
		if _, ok := projects[b.ProjectID]; !ok {
			fail("bid %s: unknown project %s", b.ID, b.ProjectID)
		}
		if !hasRole(b.SubcontractorID, domain.RoleSubcontractor) {
			fail("bid %s: subcontractorId %s is not a subcontractor", b.ID, b.SubcontractorID)
		}
		if b.Contractor != nil && b.Contractor.ID != b.SubcontractorID {
			fail("bid %s: contractor snapshot belongs to %s", b.ID, b.Contractor.ID)
		}
		if b.Amount < 0 {
			fail("bid %s: negative amount", b.ID)
		}
		if b.Status == domain.BidAwarded {
			awarded[b.ProjectID]++
		}
	}
	for pid, n := range awarded {
		if n > 1 {
			fail("project %s: %d awarded bids", pid, n)
		}
	}

	for _, n := range ds.Notifications {
		if _, ok := users[n.UserID]; !ok {
			fail("notification %s: unknown user %s", n.ID, n.UserID)
		}
	}

	items := make(map[string]domain.InventoryItem, len(ds.Inventory))
	for _, it := range ds.Inventory {
		items[it.ID] = it
		if !hasRole(it.SupplierID, domain.RoleSupplier) {
			fail("inventory %s: supplierId %s is not a supplier", it.ID, it.SupplierID)
		}
	}

	orders := make(map[string]domain.Order, len(ds.Orders))
	for _, o := range ds.Orders {
		orders[o.ID] = o
		if !hasRole(o.SupplierID, domain.RoleSupplier) {
			fail("order %s: supplierId %s is not a supplier", o.ID, o.SupplierID)
		}
		if _, ok := users[o.BuyerID]; !ok {
			fail("order %s: unknown buyer %s", o.ID, o.BuyerID)
		}
		if o.ProjectID != "" {
			if _, ok := projects[o.ProjectID]; !ok {
				fail("order %s: unknown project %s", o.ID, o.ProjectID)
			}
		}
		for _, l := range o.Items {
			it, ok := items[l.ItemID]
			if !ok {
				fail("order %s: unknown item %s", o.ID, l.ItemID)
			} else if it.SupplierID != o.SupplierID {
				fail("order %s: item %s belongs to another supplier", o.ID, l.ItemID)
			}
		}
		if o.UpdatedAt.Before(o.CreatedAt) {
			fail("order %s: updatedAt before createdAt", o.ID)
		}
	}

	loans := make(map[string]domain.Loan, len(ds.Loans))
	for _, l := range ds.Loans {
		loans[l.ID] = l
		if !hasRole(l.BankID, domain.RoleBank) {
			fail("loan %s: bankId %s is not a bank", l.ID, l.BankID)
		}
		if _, ok := users[l.BorrowerID]; !ok {
			fail("loan %s: unknown borrower %s", l.ID, l.BorrowerID)
		}
		if l.ProjectID != "" {
			if _, ok := projects[l.ProjectID]; !ok {
				fail("loan %s: unknown project %s", l.ID, l.ProjectID)
			}
		}
		if l.UpdatedAt.Before(l.CreatedAt) {
			fail("loan %s: updatedAt before createdAt", l.ID)
		}
	}

	for _, p := range ds.Payments {
		if _, ok := users[p.PayerID]; !ok {
			fail("payment %s: unknown payer %s", p.ID, p.PayerID)
		}
		if _, ok := users[p.PayeeID]; !ok {
			fail("payment %s: unknown payee %s", p.ID, p.PayeeID)
		}
		_, hasOrder := orders[p.OrderID]
		_, hasLoan := loans[p.LoanID]
		if !hasOrder && !hasLoan {
			fail("payment %s: references neither an order nor a loan", p.ID)
		}
	}
	return errs
}
