package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
)

// ErrNotFound is returned when a lookup by id matches no record
var ErrNotFound = errors.New("record not found")

// DeleteResult reports the records removed by a cascading property delete
type DeleteResult struct {
	Rooms    int `json:"rooms"`
	Tenants  int `json:"tenants"`
	Payments int `json:"payments"`
}

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) (*models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	List(ctx context.Context) ([]*models.Property, error)
	Update(ctx context.Context, id string, patch models.PropertyPatch, at time.Time) (*models.Property, error)
	// Delete removes the property and every room, tenant and payment that
	// references it, in one atomic step.
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) (*models.Room, error)
	GetByID(ctx context.Context, id string) (*models.Room, error)
	List(ctx context.Context) ([]*models.Room, error)
	Update(ctx context.Context, id string, patch models.RoomPatch, at time.Time) (*models.Room, error)
	Delete(ctx context.Context, id string) error
}

// TenantRepository defines the interface for tenant data operations
type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	Update(ctx context.Context, id string, patch models.TenantPatch, at time.Time) (*models.Tenant, error)
	Delete(ctx context.Context, id string) error
	// Vacate deactivates the tenant and frees the room it references.
	// Both writes are applied together or not at all.
	Vacate(ctx context.Context, id string, at time.Time) (*models.Tenant, error)
}

// PaymentRepository defines the interface for rent payment operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.RentPayment) (*models.RentPayment, error)
	GetByID(ctx context.Context, id string) (*models.RentPayment, error)
	List(ctx context.Context) ([]*models.RentPayment, error)
	Update(ctx context.Context, id string, patch models.RentPaymentPatch, at time.Time) (*models.RentPayment, error)
	Delete(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string, paidDate, now time.Time) (*models.RentPayment, error)
}

// Store groups the four collections behind one backend
type Store interface {
	Properties() PropertyRepository
	Rooms() RoomRepository
	Tenants() TenantRepository
	Payments() PaymentRepository
	// Snapshot returns a consistent copy of all collections.
	Snapshot(ctx context.Context) (*models.Snapshot, error)
	Close() error
}
