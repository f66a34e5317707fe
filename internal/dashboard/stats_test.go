package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/rentbook/internal/models"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func room(status models.RoomStatus, rent int64) *models.Room {
	return &models.Room{Status: status, RentAmount: decimal.NewFromInt(rent)}
}

func TestCalculateCountsRoomsAndRevenue(t *testing.T) {
	snap := &models.Snapshot{
		Properties: []*models.Property{{ID: "p1"}, {ID: "p2"}},
		Rooms: []*models.Room{
			room(models.RoomStatusOccupied, 5000),
			room(models.RoomStatusOccupied, 7500),
			room(models.RoomStatusAvailable, 9000),
			room(models.RoomStatusMaintenance, 1000),
		},
		Tenants: []*models.Tenant{{IsActive: true}, {IsActive: false}, {IsActive: true}},
	}

	stats := Calculate(snap, now)
	assert.Equal(t, 2, stats.TotalProperties)
	assert.Equal(t, 4, stats.TotalRooms)
	assert.Equal(t, 2, stats.OccupiedRooms)
	assert.Equal(t, 1, stats.AvailableRooms)
	assert.Equal(t, 1, stats.MaintenanceRooms)
	assert.True(t, decimal.NewFromInt(12500).Equal(stats.TotalMonthlyRevenue))
	assert.Equal(t, 3, stats.TotalTenants)
	assert.Equal(t, 2, stats.ActiveTenants)
}

func TestCalculateOverdueUsesStrictComparison(t *testing.T) {
	snap := &models.Snapshot{
		Payments: []*models.RentPayment{
			{Status: models.PaymentStatusOverdue, DueDate: now.Add(-time.Hour)},
			{Status: models.PaymentStatusOverdue, DueDate: now},
			{Status: models.PaymentStatusOverdue, DueDate: now.Add(24 * time.Hour)},
			{Status: models.PaymentStatusPending, DueDate: now.Add(-time.Hour)},
			{Status: models.PaymentStatusPaid, DueDate: now.Add(-time.Hour)},
		},
	}

	stats := Calculate(snap, now)
	assert.Equal(t, 1, stats.OverduePayments)
	assert.Equal(t, 1, stats.PendingPayments)
}

func TestCalculateHandlesMissingCollections(t *testing.T) {
	stats := Calculate(nil, now)
	assert.Zero(t, stats.TotalRooms)
	assert.True(t, stats.TotalMonthlyRevenue.IsZero())

	stats = Calculate(&models.Snapshot{Rooms: []*models.Room{room(models.RoomStatusAvailable, 1)}}, now)
	assert.Zero(t, stats.TotalProperties)
	assert.Equal(t, 1, stats.TotalRooms)
	assert.Zero(t, stats.PendingPayments)
}

func TestPerCollectionStats(t *testing.T) {
	props := []*models.Property{
		{Type: models.PropertyTypeApartment},
		{Type: models.PropertyTypeApartment},
		{Type: models.PropertyTypeHouse},
	}
	ps := CalculatePropertyStats(props)
	assert.Equal(t, 3, ps.Total)
	assert.Equal(t, 2, ps.ByType[models.PropertyTypeApartment])
	assert.Equal(t, 1, ps.ByType[models.PropertyTypeHouse])
	assert.Equal(t, 0, ps.ByType[models.PropertyTypeCommercial])

	ts := CalculateTenantStats([]*models.Tenant{{IsActive: true}, {}})
	assert.Equal(t, TenantStats{Total: 2, Active: 1, Inactive: 1}, ts)

	rs := CalculateRoomStats([]*models.Room{room(models.RoomStatusAvailable, 1), room(models.RoomStatusOccupied, 1)})
	assert.Equal(t, RoomStats{Total: 2, Available: 1, Occupied: 1}, rs)

	rent := CalculateRentStats([]*models.RentPayment{
		{Status: models.PaymentStatusPending, Amount: decimal.NewFromInt(100)},
		{Status: models.PaymentStatusOverdue, Amount: decimal.NewFromInt(250)},
		{Status: models.PaymentStatusPaid, Amount: decimal.NewFromInt(1000)},
	})
	assert.Equal(t, 1, rent.Pending)
	assert.Equal(t, 1, rent.Overdue)
	assert.Equal(t, 1, rent.Paid)
	assert.True(t, decimal.NewFromInt(350).Equal(rent.TotalDue))
}

func TestOverdueHelpers(t *testing.T) {
	paid := now
	assert.True(t, IsPaymentOverdue(now.Add(-time.Minute), nil, now))
	assert.False(t, IsPaymentOverdue(now.Add(-time.Minute), &paid, now))
	assert.False(t, IsPaymentOverdue(now, nil, now))

	assert.Equal(t, 1, DaysUntilDue(now.Add(2*time.Hour), now))
	assert.Equal(t, 3, DaysUntilDue(now.Add(72*time.Hour), now))
	assert.Equal(t, -1, DaysUntilDue(now.Add(-36*time.Hour), now))

	payments := []*models.RentPayment{
		{ID: "a", Status: models.PaymentStatusPending, DueDate: now.Add(-time.Hour)},
		{ID: "b", Status: models.PaymentStatusPaid, DueDate: now.Add(-time.Hour), PaidDate: &paid},
		{ID: "c", Status: models.PaymentStatusOverdue, DueDate: now.Add(time.Hour)},
	}
	overdue := OverduePayments(payments, now)
	require.Len(t, overdue, 1)
	assert.Equal(t, "a", overdue[0].ID)

	outstanding := OutstandingPayments(payments)
	require.Len(t, outstanding, 2)
	assert.Equal(t, "a", outstanding[0].ID)
	assert.Equal(t, "c", outstanding[1].ID)
}

func TestGroupingHelpers(t *testing.T) {
	rooms := []*models.Room{{ID: "r1", PropertyID: "p1"}, {ID: "r2", PropertyID: "p2"}, {ID: "r3", PropertyID: "p1"}}
	got := RoomsByProperty(rooms, "p1")
	require.Len(t, got, 2)
	assert.Equal(t, "r3", got[1].ID)

	payments := []*models.RentPayment{{ID: "x", TenantID: "t1", RoomID: "r1"}, {ID: "y", TenantID: "t2", RoomID: "r1"}}
	assert.Len(t, PaymentsByTenant(payments, "t1"), 1)
	assert.Len(t, PaymentsByRoom(payments, "r1"), 2)
	assert.Len(t, TenantsByProperty([]*models.Tenant{{PropertyID: "p9"}}, "p1"), 0)
}
