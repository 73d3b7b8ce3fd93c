package storage

import "procurehub/internal/core/domain"

// Adapters groups every typed adapter over one Store
type Adapters struct {
	Store         *Store
	Users         *UserStorage
	Projects      *ProjectStorage
	Bids          *BidStorage
	Notifications *NotificationStorage
	App           *AppStorage
	Loans         *Collection[domain.Loan]
	Orders        *Collection[domain.Order]
	Payments      *Collection[domain.Payment]
	Inventory     *Collection[domain.InventoryItem]
}

// NewAdapters wires all adapters to s
func NewAdapters(s *Store) *Adapters {
	return &Adapters{
		Store:         s,
		Users:         NewUserStorage(s),
		Projects:      NewProjectStorage(s),
		Bids:          NewBidStorage(s),
		Notifications: NewNotificationStorage(s),
		App:           NewAppStorage(s),
		Loans:         NewCollection[domain.Loan](s, KeyLoans),
		Orders:        NewCollection[domain.Order](s, KeyOrders),
		Payments:      NewCollection[domain.Payment](s, KeyPayments),
		Inventory:     NewCollection[domain.InventoryItem](s, KeyInventory),
	}
}
