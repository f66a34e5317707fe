package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a rent payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// Valid reports whether s is a known payment status
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// RentPayment represents one rent charge for a tenant
type RentPayment struct {
	ID         string          `json:"id" db:"id"`
	TenantID   string          `json:"tenant_id" db:"tenant_id" validate:"required"`
	RoomID     string          `json:"room_id" db:"room_id"`
	PropertyID string          `json:"property_id" db:"property_id"`
	Amount     decimal.Decimal `json:"amount" db:"amount" validate:"gt=0"`
	DueDate    time.Time       `json:"due_date" db:"due_date"`
	PaidDate   *time.Time      `json:"paid_date,omitempty" db:"paid_date"`
	Status     PaymentStatus   `json:"status" db:"status" validate:"oneof=pending paid overdue"`
	Notes      *string         `json:"notes,omitempty" db:"notes" validate:"omitempty,max=500"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// IsPaid returns true if the payment has been settled
func (p *RentPayment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// IsOutstanding returns true if the payment still awaits money
func (p *RentPayment) IsOutstanding() bool {
	return p.Status == PaymentStatusPending || p.Status == PaymentStatusOverdue
}

// RentPaymentPatch holds the fields of a partial payment update
type RentPaymentPatch struct {
	Amount   *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gt=0"`
	DueDate  *time.Time       `json:"due_date,omitempty"`
	PaidDate *time.Time       `json:"paid_date,omitempty"`
	Status   *PaymentStatus   `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue"`
	Notes    *string          `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// Apply merges the patch into p. It does not touch timestamps.
func (p *RentPayment) Apply(patch RentPaymentPatch) {
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.DueDate != nil {
		p.DueDate = *patch.DueDate
	}
	if patch.PaidDate != nil {
		p.PaidDate = cloneTime(patch.PaidDate)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Notes != nil {
		p.Notes = cloneString(patch.Notes)
	}
}

// Clone returns a deep copy of the payment
func (p *RentPayment) Clone() *RentPayment {
	c := *p
	c.PaidDate = cloneTime(p.PaidDate)
	c.Notes = cloneString(p.Notes)
	return &c
}
