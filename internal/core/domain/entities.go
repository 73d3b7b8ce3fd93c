package domain

import (
	"slices"
	"time"
)

// Entity is implemented by every record kept in a collection
type Entity interface {
	GetID() string
}

// Role represents user role in the marketplace
type Role string

const (
	RoleGC            Role = "gc"
	RoleSubcontractor Role = "subcontractor"
	RoleSupplier      Role = "supplier"
	RoleBank          Role = "bank"
	RoleAdmin         Role = "admin"
)

// Roles lists every known role
var Roles = []Role{RoleGC, RoleSubcontractor, RoleSupplier, RoleBank, RoleAdmin}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleGC, RoleSubcontractor, RoleSupplier, RoleBank, RoleAdmin:
		return true
	}
	return false
}

// User represents a marketplace account
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Company      string    `json:"company,omitempty"`
	Verified     bool      `json:"verified"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) GetID() string { return u.ID }

// UserResponse is the public view of a user
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToResponse strips credentials from the user
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Name:      u.Name,
		Company:   u.Company,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectBidding   ProjectStatus = "bidding"
	ProjectAwarded   ProjectStatus = "awarded"
	ProjectCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectDraft, ProjectActive, ProjectBidding, ProjectAwarded, ProjectCompleted:
		return true
	}
	return false
}

// AcceptsBids reports whether subcontractors may bid on a project in this status
func (s ProjectStatus) AcceptsBids() bool {
	return s == ProjectActive || s == ProjectBidding
}

// PlanFile is metadata of a drawing or document attached to a project
type PlanFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	Category   string    `json:"category,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Project is a construction job owned by a general contractor
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	GCID          string        `json:"gcId"`
	Status        ProjectStatus `json:"status"`
	PlanFiles     []PlanFile    `json:"planFiles"`
	EstimatedCost float64       `json:"estimatedCost"`
	Timeline      string        `json:"timeline"`
	Location      string        `json:"location,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (p Project) GetID() string { return p.ID }

// Clone copies the project including its plan files
func (p Project) Clone() Project {
	p.PlanFiles = slices.Clone(p.PlanFiles)
	return p
}

// Touch moves UpdatedAt forward, never before CreatedAt
func (p *Project) Touch(now time.Time) {
	if now.Before(p.CreatedAt) {
		now = p.CreatedAt
	}
	p.UpdatedAt = now
}

// BidStatus represents the decision state of a bid
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidAwarded  BidStatus = "awarded"
	BidRejected BidStatus = "rejected"
)

func (s BidStatus) Valid() bool {
	switch s {
	case BidPending, BidAwarded, BidRejected:
		return true
	}
	return false
}

// ContractorSnapshot is the denormalized contractor view embedded in a bid
type ContractorSnapshot struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Rating            float64  `json:"rating"`
	CompletedProjects int      `json:"completedProjects"`
	OnTimeRate        float64  `json:"onTimeRate"`
	Specializations   []string `json:"specializations"`
}

// Bid is a subcontractor's priced proposal against a project
type Bid struct {
	ID              string              `json:"id"`
	ProjectID       string              `json:"projectId"`
	SubcontractorID string              `json:"subcontractorId"`
	Amount          float64             `json:"amount"`
	Timeline        string              `json:"timeline"`
	Description     string              `json:"description"`
	Status          BidStatus           `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	Contractor      *ContractorSnapshot `json:"contractor,omitempty"`
	SubmittedAt     time.Time           `json:"submittedAt"`
}

func (b Bid) GetID() string { return b.ID }

// Clone copies the bid including its contractor snapshot
func (b Bid) Clone() Bid {
	if b.Contractor != nil {
		c := *b.Contractor
		c.Specializations = slices.Clone(c.Specializations)
		b.Contractor = &c
	}
	return b
}

// CanTransition reports whether the bid may move to the given status.
// pending is the only non-terminal state.
func (b *Bid) CanTransition(to BidStatus) bool {
	return b.Status == BidPending && (to == BidAwarded || to == BidRejected)
}

// NotificationType is the severity of a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// Priority of a notification
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// NotificationCategory groups notifications by origin
type NotificationCategory string

const (
	CategoryBid     NotificationCategory = "bid"
	CategoryProject NotificationCategory = "project"
	CategoryPayment NotificationCategory = "payment"
	CategorySystem  NotificationCategory = "system"
	CategoryMessage NotificationCategory = "message"
)

// Notification is the single notification shape used by storage, services and HTTP
type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Type      NotificationType     `json:"type"`
	Read      bool                 `json:"read"`
	Priority  Priority             `json:"priority,omitempty"`
	Category  NotificationCategory `json:"category,omitempty"`
	ActionURL string               `json:"actionUrl,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

func (n Notification) GetID() string { return n.ID }
