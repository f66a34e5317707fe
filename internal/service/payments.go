package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/events"
	"github.com/Kerhoff/rentbook/internal/models"
)

func (s *Service) AddPayment(ctx context.Context, payment *models.RentPayment) (*models.RentPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addPayment(ctx, payment)
}

func (s *Service) addPayment(ctx context.Context, payment *models.RentPayment) (*models.RentPayment, error) {
	p := payment.Clone()
	p.ID = ""
	p.CreatedAt = s.now()
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	created, err := s.store.Payments().Create(ctx, p)
	s.record(ctx, events.EntityPayment, events.ActionCreated, created, err)
	if err != nil {
		return nil, fmt.Errorf("failed to add payment: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"payment_id": created.ID,
		"tenant_id":  created.TenantID,
		"status":     created.Status,
	}).Info("Payment added")
	return created, nil
}

// RecordPayment stores a payment the tenant has made. Room and property come
// from the tenant record. The due date is now; the paid date defaults to now.
func (s *Service) RecordPayment(ctx context.Context, tenantID string, amount decimal.Decimal, paidDate *time.Time, notes *string) (*models.RentPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Tenants().GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	now := s.now()
	paid := s.paidAt(paidDate)
	return s.addPayment(ctx, &models.RentPayment{
		TenantID:   t.ID,
		RoomID:     t.RoomID,
		PropertyID: t.PropertyID,
		Amount:     amount,
		DueDate:    now,
		PaidDate:   &paid,
		Status:     models.PaymentStatusPaid,
		Notes:      notes,
	})
}

// MarkPaymentPaid settles an existing payment on paidDate, or now when nil
func (s *Service) MarkPaymentPaid(ctx context.Context, id string, paidDate *time.Time) (*models.RentPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paid, err := s.store.Payments().MarkPaid(ctx, id, s.paidAt(paidDate), s.now())
	s.record(ctx, events.EntityPayment, events.ActionPaid, paid, err)
	if err != nil {
		return nil, fmt.Errorf("failed to mark payment %s paid: %w", id, err)
	}
	s.logger.WithField("payment_id", id).Info("Payment marked paid")
	return paid, nil
}

func (s *Service) paidAt(paidDate *time.Time) time.Time {
	if paidDate == nil || paidDate.IsZero() {
		return s.now()
	}
	return *paidDate
}

func (s *Service) UpdatePayment(ctx context.Context, id string, patch models.RentPaymentPatch) (*models.RentPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.store.Payments().Update(ctx, id, patch, s.now())
	s.record(ctx, events.EntityPayment, events.ActionUpdated, updated, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update payment %s: %w", id, err)
	}
	return updated, nil
}

func (s *Service) DeletePayment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Payments().Delete(ctx, id)
	s.record(ctx, events.EntityPayment, events.ActionDeleted, map[string]string{"id": id}, err)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	return nil
}

func (s *Service) GetPayment(ctx context.Context, id string) (*models.RentPayment, error) {
	p, err := s.store.Payments().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) ListPayments(ctx context.Context) ([]*models.RentPayment, error) {
	list, err := s.store.Payments().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return list, nil
}
