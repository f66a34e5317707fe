// Package postgres implements repository.Store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Store is a repository.Store backed by a PostgreSQL database
type Store struct {
	db    *sql.DB
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

// NewStore wraps an open database handle
func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now, newID: models.NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Properties() repository.PropertyRepository { return &propertyRepository{s: s, db: s.db} }
func (s *Store) Rooms() repository.RoomRepository           { return &roomRepository{s: s, db: s.db} }
func (s *Store) Tenants() repository.TenantRepository       { return &tenantRepository{s: s, db: s.db} }
func (s *Store) Payments() repository.PaymentRepository     { return &paymentRepository{s: s, db: s.db} }

// Snapshot reads all four tables inside one read-only repeatable-read transaction
func (s *Store) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer tx.Rollback()

	snap := &models.Snapshot{}
	if snap.Properties, err = (&propertyRepository{s: s, db: tx}).List(ctx); err != nil {
		return nil, err
	}
	if snap.Rooms, err = (&roomRepository{s: s, db: tx}).List(ctx); err != nil {
		return nil, err
	}
	if snap.Tenants, err = (&tenantRepository{s: s, db: tx}).List(ctx); err != nil {
		return nil, err
	}
	if snap.Payments, err = (&paymentRepository{s: s, db: tx}).List(ctx); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return snap, nil
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) stamp(id *string, created, updated *time.Time) {
	if *id == "" {
		*id = s.newID()
	}
	if created.IsZero() {
		*created = s.now()
	}
	*updated = *created
}

// withTx runs fn inside a transaction, rolling back on any error
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	return err
}
