package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

type paymentRepository struct {
	s *Store
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.RentPayment) (*models.RentPayment, error) {
	p := payment.Clone()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	r.s.payments = append(r.s.payments, p)
	return p.Clone(), nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.RentPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.payments, func(p *models.RentPayment) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return r.s.payments[i].Clone(), nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*models.RentPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.RentPayment, 0, len(r.s.payments))
	for _, p := range r.s.payments {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *paymentRepository) Update(ctx context.Context, id string, patch models.RentPaymentPatch, at time.Time) (*models.RentPayment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.payments, func(p *models.RentPayment) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := r.s.payments[i]
	p.Apply(patch)
	p.UpdatedAt = at
	return p.Clone(), nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.payments, func(p *models.RentPayment) bool { return p.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.s.payments = slices.Delete(r.s.payments, i, i+1)
	return nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id string, paidDate, now time.Time) (*models.RentPayment, error) {
	status := models.PaymentStatusPaid
	return r.Update(ctx, id, models.RentPaymentPatch{Status: &status, PaidDate: &paidDate}, now)
}
