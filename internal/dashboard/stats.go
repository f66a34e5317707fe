// Package dashboard computes summary statistics and filtered views over a
// snapshot of the rental collections. Everything here is a pure function.
package dashboard

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kerhoff/rentbook/internal/models"
)

// Calculate builds the dashboard summary for snap as seen at now.
// A nil snapshot or nil collections count as empty.
func Calculate(snap *models.Snapshot, now time.Time) models.DashboardStats {
	stats := models.DashboardStats{TotalMonthlyRevenue: decimal.Zero}
	if snap == nil {
		return stats
	}

	stats.TotalProperties = len(snap.Properties)
	stats.TotalRooms = len(snap.Rooms)
	for _, r := range snap.Rooms {
		switch r.Status {
		case models.RoomStatusOccupied:
			stats.OccupiedRooms++
			stats.TotalMonthlyRevenue = stats.TotalMonthlyRevenue.Add(r.RentAmount)
		case models.RoomStatusAvailable:
			stats.AvailableRooms++
		case models.RoomStatusMaintenance:
			stats.MaintenanceRooms++
		}
	}

	stats.TotalTenants = len(snap.Tenants)
	for _, t := range snap.Tenants {
		if t.IsActive {
			stats.ActiveTenants++
		}
	}

	for _, p := range snap.Payments {
		switch p.Status {
		case models.PaymentStatusPending:
			stats.PendingPayments++
		case models.PaymentStatusOverdue:
			// overdue-labelled payments with a future due date are not counted
			if p.DueDate.Before(now) {
				stats.OverduePayments++
			}
		}
	}
	return stats
}

// PropertyStats counts properties by type
type PropertyStats struct {
	Total  int                         `json:"total"`
	ByType map[models.PropertyType]int `json:"by_type"`
}

// RoomStats counts rooms by status
type RoomStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

// TenantStats counts tenants by activity
type TenantStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// RentStats counts payments by status. TotalDue sums pending and overdue amounts.
type RentStats struct {
	Total    int             `json:"total"`
	Pending  int             `json:"pending"`
	Overdue  int             `json:"overdue"`
	Paid     int             `json:"paid"`
	TotalDue decimal.Decimal `json:"total_due"`
}

func CalculatePropertyStats(properties []*models.Property) PropertyStats {
	stats := PropertyStats{Total: len(properties), ByType: make(map[models.PropertyType]int, len(models.PropertyTypes))}
	for _, t := range models.PropertyTypes {
		stats.ByType[t] = 0
	}
	for _, p := range properties {
		if _, ok := stats.ByType[p.Type]; ok {
			stats.ByType[p.Type]++
		}
	}
	return stats
}

func CalculateRoomStats(rooms []*models.Room) RoomStats {
	stats := RoomStats{Total: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case models.RoomStatusAvailable:
			stats.Available++
		case models.RoomStatusOccupied:
			stats.Occupied++
		case models.RoomStatusMaintenance:
			stats.Maintenance++
		}
	}
	return stats
}

func CalculateTenantStats(tenants []*models.Tenant) TenantStats {
	stats := TenantStats{Total: len(tenants)}
	for _, t := range tenants {
		if t.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats
}

func CalculateRentStats(payments []*models.RentPayment) RentStats {
	stats := RentStats{Total: len(payments), TotalDue: decimal.Zero}
	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusPending:
			stats.Pending++
			stats.TotalDue = stats.TotalDue.Add(p.Amount)
		case models.PaymentStatusOverdue:
			stats.Overdue++
			stats.TotalDue = stats.TotalDue.Add(p.Amount)
		case models.PaymentStatusPaid:
			stats.Paid++
		}
	}
	return stats
}

// IsPaymentOverdue reports whether an unpaid charge is past its due date
func IsPaymentOverdue(due time.Time, paid *time.Time, now time.Time) bool {
	return paid == nil && due.Before(now)
}

// DaysUntilDue returns the whole days until due, rounded up. Negative when past due.
func DaysUntilDue(due, now time.Time) int {
	days := due.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

// OverduePayments returns the payments that are unpaid past their due date, in input order
func OverduePayments(payments []*models.RentPayment, now time.Time) []*models.RentPayment {
	return filter(payments, func(p *models.RentPayment) bool {
		return !p.IsPaid() && IsPaymentOverdue(p.DueDate, p.PaidDate, now)
	})
}

// OutstandingPayments returns pending and overdue payments in input order
func OutstandingPayments(payments []*models.RentPayment) []*models.RentPayment {
	return filter(payments, (*models.RentPayment).IsOutstanding)
}

func PaymentsByTenant(payments []*models.RentPayment, tenantID string) []*models.RentPayment {
	return filter(payments, func(p *models.RentPayment) bool { return p.TenantID == tenantID })
}

func PaymentsByRoom(payments []*models.RentPayment, roomID string) []*models.RentPayment {
	return filter(payments, func(p *models.RentPayment) bool { return p.RoomID == roomID })
}

func RoomsByProperty(rooms []*models.Room, propertyID string) []*models.Room {
	return filter(rooms, func(r *models.Room) bool { return r.PropertyID == propertyID })
}

func TenantsByProperty(tenants []*models.Tenant, propertyID string) []*models.Tenant {
	return filter(tenants, func(t *models.Tenant) bool { return t.PropertyID == propertyID })
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
