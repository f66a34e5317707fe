package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a consistent read of all four collections.
// Properties may be nil when the caller has no property list.
type Snapshot struct {
	Properties []*Property    `json:"properties" yaml:"properties"`
	Rooms      []*Room        `json:"rooms" yaml:"rooms"`
	Tenants    []*Tenant      `json:"tenants" yaml:"tenants"`
	Payments   []*RentPayment `json:"payments" yaml:"payments"`
}

// DashboardStats is the summary shown on the dashboard.
// TotalMonthlyRevenue is the rent of occupied rooms, not money collected.
type DashboardStats struct {
	TotalProperties     int             `json:"total_properties"`
	TotalRooms          int             `json:"total_rooms"`
	OccupiedRooms       int             `json:"occupied_rooms"`
	AvailableRooms      int             `json:"available_rooms"`
	MaintenanceRooms    int             `json:"maintenance_rooms"`
	TotalTenants        int             `json:"total_tenants"`
	ActiveTenants       int             `json:"active_tenants"`
	TotalMonthlyRevenue decimal.Decimal `json:"total_monthly_revenue"`
	PendingPayments     int             `json:"pending_payments"`
	OverduePayments     int             `json:"overdue_payments"`
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
