package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/Kerhoff/rentbook/internal/dashboard"
	"github.com/Kerhoff/rentbook/internal/events"
	"github.com/Kerhoff/rentbook/internal/metrics"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

var (
	// ErrMemberLimit is returned when a tenant would exceed models.MaxAdditionalMembers
	ErrMemberLimit      = fmt.Errorf("a tenant can have at most %d additional members", models.MaxAdditionalMembers)
	ErrMemberNotFound   = errors.New("household member not found")
	ErrDocumentNotFound = errors.New("document not found")
)

// Service is the single mutation entry point over the store. Mutations are
// serialised so read-modify-write sequences never interleave.
type Service struct {
	mu        sync.Mutex
	store     repository.Store
	logger    *logrus.Logger
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	newUUID   func() string

	announceMu       sync.Mutex
	announced        map[string]struct{}
	schedulerRunning atomic.Bool
}

// Option configures a Service
type Option func(*Service)

// WithPublisher sets the domain event publisher
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics enables store operation metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithUUID overrides the generator for member and document ids
func WithUUID(gen func() string) Option {
	return func(s *Service) { s.newUUID = gen }
}

// New creates a new Service over store
func New(store repository.Store, logger *logrus.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		logger:    logger,
		publisher: events.Noop{},
		now:       time.Now,
		newUUID:   uuid.NewString,
		announced: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock reading
func (s *Service) Now() time.Time {
	return s.now()
}

// record observes the outcome of a mutation and publishes it on success.
// Publish failures are logged and never surface to the caller.
func (s *Service) record(ctx context.Context, entity, action string, data any, err error) {
	if s.metrics != nil {
		s.metrics.ObserveStoreOp(entity, action, err)
	}
	if err != nil {
		return
	}
	subject := events.Subject(entity, action)
	if perr := s.publisher.Publish(ctx, subject, data); perr != nil {
		s.logger.WithError(perr).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// Snapshot returns a consistent read of all collections
func (s *Service) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return snap, nil
}

// DashboardStats computes the dashboard summary at the current time
func (s *Service) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return dashboard.Calculate(snap, s.now()), nil
}

// OverduePayments lists unpaid payments past their due date
func (s *Service) OverduePayments(ctx context.Context) ([]*models.RentPayment, error) {
	payments, err := s.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.OverduePayments(payments, s.now()), nil
}
