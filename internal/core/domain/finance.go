package domain

import (
	"slices"
	"time"
)

// LoanStatus represents loan application state
type LoanStatus string

const (
	LoanPending  LoanStatus = "pending"
	LoanApproved LoanStatus = "approved"
	LoanRejected LoanStatus = "rejected"
	LoanActive   LoanStatus = "active"
	LoanRepaid   LoanStatus = "repaid"
)

func (s LoanStatus) Valid() bool {
	switch s {
	case LoanPending, LoanApproved, LoanRejected, LoanActive, LoanRepaid:
		return true
	}
	return false
}

// Disbursed reports whether money has left the bank for this loan
func (s LoanStatus) Disbursed() bool {
	return s == LoanApproved || s == LoanActive || s == LoanRepaid
}

// Loan is a construction financing request handled by a bank
type Loan struct {
	ID           string     `json:"id"`
	BorrowerID   string     `json:"borrowerId"`
	BankID       string     `json:"bankId"`
	ProjectID    string     `json:"projectId,omitempty"`
	Amount       float64    `json:"amount"`
	InterestRate float64    `json:"interestRate"`
	TermMonths   int        `json:"termMonths"`
	Purpose      string     `json:"purpose"`
	Status       LoanStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (l Loan) GetID() string { return l.ID }

// OrderStatus represents material order state
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

var orderFlow = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
}

// CanTransition reports whether an order may move from s to next
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderLine is one inventory item in an order
type OrderLine struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is a material purchase from a supplier
type Order struct {
	ID         string      `json:"id"`
	SupplierID string      `json:"supplierId"`
	BuyerID    string      `json:"buyerId"`
	ProjectID  string      `json:"projectId,omitempty"`
	Items      []OrderLine `json:"items"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func (o Order) GetID() string { return o.ID }

// Clone copies the order including its lines
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// OrderTotal sums quantity * unit price over all lines
func OrderTotal(lines []OrderLine) float64 {
	var total float64
	for _, l := range lines {
		total += float64(l.Quantity) * l.UnitPrice
	}
	return total
}

// PaymentMethod of a payment
type PaymentMethod string

const (
	PaymentACH   PaymentMethod = "ach"
	PaymentWire  PaymentMethod = "wire"
	PaymentCard  PaymentMethod = "card"
	PaymentCheck PaymentMethod = "check"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentACH, PaymentWire, PaymentCard, PaymentCheck:
		return true
	}
	return false
}

// PaymentStatus of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment settles an order or a loan installment
type Payment struct {
	ID        string        `json:"id"`
	PayerID   string        `json:"payerId"`
	PayeeID   string        `json:"payeeId"`
	OrderID   string        `json:"orderId,omitempty"`
	LoanID    string        `json:"loanId,omitempty"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (p Payment) GetID() string { return p.ID }

// InventoryItem is stock held by a supplier
type InventoryItem struct {
	ID           string    `json:"id"`
	SupplierID   string    `json:"supplierId"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	ReorderLevel int       `json:"reorderLevel"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (i InventoryItem) GetID() string { return i.ID }

// LowStock reports whether the item should be reordered
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
