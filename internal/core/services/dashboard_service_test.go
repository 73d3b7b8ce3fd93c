package services

import (
	"testing"

	"procurehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_GC(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.Dashboard.GetDashboardData(f.ctx, "gc-1", domain.RoleGC)
	require.NoError(t, err)
	require.NotNil(t, data.GC)
	assert.Nil(t, data.Subcontractor)

	gc := data.GC
	assert.Equal(t, 2, gc.TotalProjects)
	assert.Equal(t, 1, gc.ActiveProjects)
	assert.Equal(t, 5, gc.TotalBids)
	assert.Equal(t, 3, gc.PendingBids)
	assert.Equal(t, 3_700_000.0, gc.TotalBudget)
	require.Len(t, gc.RecentBids, 5)
	assert.Equal(t, "bid-3", gc.RecentBids[0].ID)
	assert.Equal(t, 1, data.UnreadNotifications)
}

func TestDashboardService_Subcontractor(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.Dashboard.GetDashboardData(f.ctx, "sub-3", domain.RoleSubcontractor)
	require.NoError(t, err)
	require.NotNil(t, data.Subcontractor)

	sub := data.Subcontractor
	assert.Equal(t, 2, sub.TotalBids)
	assert.Equal(t, 1, sub.PendingBids)
	assert.Equal(t, 1, sub.AwardedBids)
	assert.Equal(t, 0, sub.RejectedBids)
	assert.Equal(t, 280_000.0, sub.Earnings)
	assert.Equal(t, 1.0, sub.WinRate)
	assert.Equal(t, 1, sub.OpenProjects)
}

func TestDashboardService_SupplierAndBank(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.Dashboard.GetDashboardData(f.ctx, "sup-1", domain.RoleSupplier)
	require.NoError(t, err)
	require.NotNil(t, data.Supplier)
	assert.Equal(t, 2, data.Supplier.TotalOrders)
	assert.Equal(t, 1, data.Supplier.PendingOrders)
	assert.InDelta(t, 4301.40, data.Supplier.Revenue, 0.001)
	assert.Equal(t, 4, data.Supplier.InventoryItems)
	assert.Equal(t, 2, data.Supplier.LowStockItems)

	data, err = f.svc.Dashboard.GetDashboardData(f.ctx, "bank-1", domain.RoleBank)
	require.NoError(t, err)
	require.NotNil(t, data.Bank)
	assert.Equal(t, 3, data.Bank.TotalLoans)
	assert.Equal(t, 1, data.Bank.PendingLoans)
	assert.Equal(t, 1, data.Bank.ActiveLoans)
	assert.Equal(t, 580_000.0, data.Bank.TotalDisbursed)
	assert.Equal(t, 500_000.0, data.Bank.PortfolioValue)
}

func TestDashboardService_Admin(t *testing.T) {
	f := newFixture(t)

	data, err := f.svc.Dashboard.GetDashboardData(f.ctx, "admin-1", domain.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, data.Admin)
	assert.Equal(t, 9, data.Admin.TotalUsers)
	assert.Equal(t, 4, data.Admin.UsersByRole[domain.RoleSubcontractor])
	assert.Equal(t, 4, data.Admin.TotalProjects)
	assert.Equal(t, 6, data.Admin.TotalBids)
	assert.Equal(t, 3, data.Admin.TotalLoans)
	assert.Equal(t, 2, data.Admin.TotalOrders)
}

func TestDashboardService_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Dashboard.GetDashboardData(f.ctx, "gc-1", domain.RoleBank)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Dashboard.GetDashboardData(f.ctx, "ghost", domain.RoleGC)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
