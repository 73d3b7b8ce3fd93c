package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"procurehub/internal/core/domain"
)

// SupplyService handles supplier inventory and material orders
type SupplyService struct {
	repos         *Repositories
	notifications *NotificationService
	env           Env
}

// NewSupplyService creates a new supply service
func NewSupplyService(repos *Repositories, notifications *NotificationService, env Env) *SupplyService {
	return &SupplyService{repos: repos, notifications: notifications, env: env}
}

// InventoryFilter narrows GetInventory
type InventoryFilter struct {
	SupplierID   string
	LowStockOnly bool
	Limit        int
}

// InventoryInput creates an item, or updates it when ID is set
type InventoryInput struct {
	ID           string  `json:"id"`
	SupplierID   string  `json:"supplierId"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	ReorderLevel int     `json:"reorderLevel"`
}

// OrderFilter narrows GetOrders
type OrderFilter struct {
	SupplierID string
	BuyerID    string
	Statuses   []domain.OrderStatus
	Limit      int
}

// OrderItemInput is one requested line
type OrderItemInput struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderInput for placing an order with one supplier
type PlaceOrderInput struct {
	SupplierID string           `json:"supplierId"`
	BuyerID    string           `json:"buyerId"`
	ProjectID  string           `json:"projectId"`
	Items      []OrderItemInput `json:"items"`
}

// GetInventory lists items, most recently updated first
func (s *SupplyService) GetInventory(ctx context.Context, filter InventoryFilter) ([]domain.InventoryItem, error) {
	if err := s.env.begin(ctx, "GetInventory"); err != nil {
		return nil, err
	}
	items, err := s.repos.Inventory.List(ctx, func(i domain.InventoryItem) bool {
		if filter.SupplierID != "" && i.SupplierID != filter.SupplierID {
			return false
		}
		return !filter.LowStockOnly || i.LowStock()
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(items, func(i domain.InventoryItem) time.Time { return i.UpdatedAt }, filter.Limit), nil
}

// UpsertInventoryItem creates or replaces a supplier's item
func (s *SupplyService) UpsertInventoryItem(ctx context.Context, input InventoryInput) (*domain.InventoryItem, error) {
	if err := s.env.begin(ctx, "UpsertInventoryItem"); err != nil {
		return nil, err
	}
	supplier, err := s.repos.Users.Get(ctx, input.SupplierID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.SupplierID)
	}
	if supplier.Role != domain.RoleSupplier {
		return nil, domain.Validationf("user %s is not a supplier", supplier.ID)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.Validationf("name is required")
	}
	if input.Quantity < 0 || input.ReorderLevel < 0 || input.UnitPrice < 0 {
		return nil, domain.Validationf("quantity, reorderLevel and unitPrice must not be negative")
	}

	item := domain.InventoryItem{
		ID:           input.ID,
		SupplierID:   supplier.ID,
		SKU:          strings.TrimSpace(input.SKU),
		Name:         strings.TrimSpace(input.Name),
		Category:     input.Category,
		Unit:         input.Unit,
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		ReorderLevel: input.ReorderLevel,
		UpdatedAt:    s.env.now(),
	}

	if item.ID == "" {
		item.ID = s.env.newID()
		created, err := s.repos.Inventory.Create(ctx, item)
		if err != nil {
			return nil, err
		}
		return &created, nil
	}

	updated, err := s.repos.Inventory.Update(ctx, item.ID, func(existing *domain.InventoryItem) error {
		if existing.SupplierID != supplier.ID {
			return domain.ErrForbidden
		}
		*existing = item
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrItemNotFound, item.ID)
	}
	return &updated, nil
}

// AdjustStock changes an item's quantity by delta. Stock never goes below zero.
func (s *SupplyService) AdjustStock(ctx context.Context, id string, delta int) (*domain.InventoryItem, error) {
	if err := s.env.begin(ctx, "AdjustStock"); err != nil {
		return nil, err
	}
	item, err := s.adjust(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if item.LowStock() && delta < 0 {
		s.notifications.notifyQuietly(ctx, NotifyInput{
			UserID:   item.SupplierID,
			Title:    "Low stock",
			Message:  fmt.Sprintf("%s is down to %d %s.", item.Name, item.Quantity, item.Unit),
			Type:     domain.NotificationWarning,
			Priority: domain.PriorityMedium,
			Category: domain.CategorySystem,
		})
	}
	return item, nil
}

func (s *SupplyService) adjust(ctx context.Context, id string, delta int) (*domain.InventoryItem, error) {
	item, err := s.repos.Inventory.Update(ctx, id, func(i *domain.InventoryItem) error {
		if i.Quantity+delta < 0 {
			return domain.Validationf("insufficient stock for %s: have %d, need %d", i.Name, i.Quantity, -delta)
		}
		i.Quantity += delta
		i.UpdatedAt = s.env.now()
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrItemNotFound, id)
	}
	return &item, nil
}

// GetOrders lists orders newest first
func (s *SupplyService) GetOrders(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	if err := s.env.begin(ctx, "GetOrders"); err != nil {
		return nil, err
	}
	orders, err := s.repos.Orders.List(ctx, func(o domain.Order) bool {
		if filter.SupplierID != "" && o.SupplierID != filter.SupplierID {
			return false
		}
		if filter.BuyerID != "" && o.BuyerID != filter.BuyerID {
			return false
		}
		return containsStatus(filter.Statuses, o.Status)
	})
	if err != nil {
		return nil, err
	}
	return newestFirst(orders, func(o domain.Order) time.Time { return o.CreatedAt }, filter.Limit), nil
}

// GetOrder gets an order by ID
func (s *SupplyService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if err := s.env.begin(ctx, "GetOrder"); err != nil {
		return nil, err
	}
	o, err := s.repos.Orders.Get(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrOrderNotFound, id)
	}
	return &o, nil
}

// PlaceOrder reserves stock for every line and creates a pending order.
// Stock already taken is given back when a later line fails.
func (s *SupplyService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	if err := s.env.begin(ctx, "PlaceOrder"); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, domain.Validationf("order has no items")
	}
	buyer, err := s.repos.Users.Get(ctx, input.BuyerID)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrUserNotFound, input.BuyerID)
	}
	if input.ProjectID != "" {
		if _, err := s.repos.Projects.Get(ctx, input.ProjectID); err != nil {
			return nil, notFoundAs(err, domain.ErrProjectNotFound, input.ProjectID)
		}
	}

	lines := make([]domain.OrderLine, 0, len(input.Items))
	for _, req := range input.Items {
		if req.Quantity <= 0 {
			return nil, domain.Validationf("quantity must be positive for item %s", req.ItemID)
		}
		item, err := s.repos.Inventory.Get(ctx, req.ItemID)
		if err != nil {
			return nil, notFoundAs(err, domain.ErrItemNotFound, req.ItemID)
		}
		if item.SupplierID != input.SupplierID {
			return nil, domain.Validationf("item %s is not sold by supplier %s", item.ID, input.SupplierID)
		}
		lines = append(lines, domain.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  req.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	reserved := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		if _, err := s.adjust(ctx, l.ItemID, -l.Quantity); err != nil {
			s.restock(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, l)
	}

	now := s.env.now()
	order, err := s.repos.Orders.Create(ctx, domain.Order{
		ID:         s.env.newID(),
		SupplierID: input.SupplierID,
		BuyerID:    buyer.ID,
		ProjectID:  input.ProjectID,
		Items:      lines,
		Total:      math.Round(domain.OrderTotal(lines)*100) / 100,
		Status:     domain.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.restock(ctx, reserved)
		return nil, err
	}

	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    order.SupplierID,
		Title:     "New order",
		Message:   fmt.Sprintf("New order of $%.2f with %d line(s).", order.Total, len(order.Items)),
		Type:      domain.NotificationInfo,
		Priority:  domain.PriorityMedium,
		Category:  domain.CategoryPayment,
		ActionURL: "/orders/" + order.ID,
	})
	return &order, nil
}

// UpdateOrderStatus moves an order forward, or cancels it and restocks
func (s *SupplyService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.env.begin(ctx, "UpdateOrderStatus"); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.Validationf("invalid order status %q", status)
	}

	order, err := s.repos.Orders.Update(ctx, id, func(o *domain.Order) error {
		if !o.Status.CanTransition(status) {
			return fmt.Errorf("%w: order %s cannot go from %s to %s", domain.ErrInvalidTransition, o.ID, o.Status, status)
		}
		o.Status = status
		o.UpdatedAt = s.env.now()
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, domain.ErrOrderNotFound, id)
	}

	if status == domain.OrderCancelled {
		s.restock(ctx, order.Items)
	}

	s.notifications.notifyQuietly(ctx, NotifyInput{
		UserID:    order.BuyerID,
		Title:     "Order " + string(order.Status),
		Message:   fmt.Sprintf("Your order %s is now %s.", order.ID, order.Status),
		Type:      domain.NotificationInfo,
		Priority:  domain.PriorityLow,
		Category:  domain.CategoryPayment,
		ActionURL: "/orders/" + order.ID,
	})
	return &order, nil
}

func (s *SupplyService) restock(ctx context.Context, lines []domain.OrderLine) {
	for _, l := range lines {
		if _, err := s.adjust(ctx, l.ItemID, l.Quantity); err != nil {
			// item may have been deleted since the order was placed
			continue
		}
	}
}
