package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBidCanTransition(t *testing.T) {
	b := Bid{Status: BidPending}
	assert.True(t, b.CanTransition(BidAwarded))
	assert.True(t, b.CanTransition(BidRejected))
	assert.False(t, b.CanTransition(BidPending))

	b.Status = BidAwarded
	assert.False(t, b.CanTransition(BidRejected))
	b.Status = BidRejected
	assert.False(t, b.CanTransition(BidAwarded))
}

func TestProjectTouchNeverBeforeCreation(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p := Project{CreatedAt: created, UpdatedAt: created}

	p.Touch(created.Add(-time.Hour))
	assert.Equal(t, created, p.UpdatedAt)

	later := created.Add(2 * time.Hour)
	p.Touch(later)
	assert.Equal(t, later, p.UpdatedAt)
}

func TestOrderStatusFlow(t *testing.T) {
	assert.True(t, OrderPending.CanTransition(OrderConfirmed))
	assert.True(t, OrderConfirmed.CanTransition(OrderCancelled))
	assert.True(t, OrderShipped.CanTransition(OrderDelivered))
	assert.False(t, OrderShipped.CanTransition(OrderCancelled))
	assert.False(t, OrderDelivered.CanTransition(OrderPending))
}

func TestOrderTotal(t *testing.T) {
	lines := []OrderLine{{Quantity: 2, UnitPrice: 10.5}, {Quantity: 3, UnitPrice: 4}}
	assert.InDelta(t, 33.0, OrderTotal(lines), 1e-9)
	assert.Zero(t, OrderTotal(nil))
}

func TestErrorCategories(t *testing.T) {
	assert.True(t, errors.Is(ErrProjectNotFound, ErrNotFound))
	assert.True(t, errors.Is(NotFound(ErrBidNotFound, "b-1"), ErrNotFound))
	assert.True(t, errors.Is(ErrEmailAlreadyExists, ErrConflict))
	assert.True(t, errors.Is(ErrFileTooLarge, ErrValidation))
	assert.True(t, errors.Is(Validationf("amount %d", -1), ErrValidation))
	assert.False(t, errors.Is(ErrBidAlreadyAwarded, ErrNotFound))
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("owner").Valid())
}

func TestCloneDetachesNestedValues(t *testing.T) {
	p := Project{PlanFiles: []PlanFile{{Name: "a.pdf"}}}
	pc := p.Clone()
	pc.PlanFiles[0].Name = "b.pdf"
	assert.Equal(t, "a.pdf", p.PlanFiles[0].Name)

	b := Bid{Contractor: &ContractorSnapshot{Specializations: []string{"hvac"}}}
	bc := b.Clone()
	bc.Contractor.Specializations[0] = "roofing"
	assert.Equal(t, "hvac", b.Contractor.Specializations[0])
	assert.Nil(t, Bid{}.Clone().Contractor)

	o := Order{Items: []OrderLine{{Quantity: 1}}}
	oc := o.Clone()
	oc.Items[0].Quantity = 5
	assert.Equal(t, 1, o.Items[0].Quantity)
}
