// Package memory implements repository.Store on in-process slices.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

// Store keeps all collections in insertion order behind a single RWMutex
type Store struct {
	mu         sync.RWMutex
	properties []*models.Property
	rooms      []*models.Room
	tenants    []*models.Tenant
	payments   []*models.RentPayment

	now   func() time.Time
	newID func() string
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for creation timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id generator
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// NewStore creates an empty in-memory store
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now, newID: models.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Properties() repository.PropertyRepository { return &propertyRepository{s} }
func (s *Store) Rooms() repository.RoomRepository           { return &roomRepository{s} }
func (s *Store) Tenants() repository.TenantRepository       { return &tenantRepository{s} }
func (s *Store) Payments() repository.PaymentRepository     { return &paymentRepository{s} }

// Snapshot copies every collection under one read lock
func (s *Store) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := &models.Snapshot{
		Properties: make([]*models.Property, 0, len(s.properties)),
		Rooms:      make([]*models.Room, 0, len(s.rooms)),
		Tenants:    make([]*models.Tenant, 0, len(s.tenants)),
		Payments:   make([]*models.RentPayment, 0, len(s.payments)),
	}
	for _, p := range s.properties {
		snap.Properties = append(snap.Properties, p.Clone())
	}
	for _, r := range s.rooms {
		snap.Rooms = append(snap.Rooms, r.Clone())
	}
	for _, t := range s.tenants {
		snap.Tenants = append(snap.Tenants, t.Clone())
	}
	for _, p := range s.payments {
		snap.Payments = append(snap.Payments, p.Clone())
	}
	return snap, nil
}

// Close is a no-op
func (s *Store) Close() error { return nil }

// stamp fills id and timestamps for a new record
func (s *Store) stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = s.newID()
	}
	if created.IsZero() {
		*created = s.now()
	}
	*updated = *created
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

// removeWhere drops matching items in place, preserving order, and returns the count removed
func removeWhere[T any](items []T, match func(T) bool) ([]T, int) {
	kept := slices.DeleteFunc(items, match)
	return kept, len(items) - len(kept)
}
