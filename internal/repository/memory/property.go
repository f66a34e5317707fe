package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

type propertyRepository struct {
	s *Store
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	p := property.Clone()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	r.s.properties = append(r.s.properties, p)
	return p.Clone(), nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.properties, func(p *models.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return r.s.properties[i].Clone(), nil
}

func (r *propertyRepository) List(ctx context.Context) ([]*models.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Property, 0, len(r.s.properties))
	for _, p := range r.s.properties {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (r *propertyRepository) Update(ctx context.Context, id string, patch models.PropertyPatch, at time.Time) (*models.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.properties, func(p *models.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	p := r.s.properties[i]
	p.Apply(patch)
	p.UpdatedAt = at
	return p.Clone(), nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.properties, func(p *models.Property) bool { return p.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	r.s.properties = slices.Delete(r.s.properties, i, i+1)

	res := &repository.DeleteResult{}
	r.s.rooms, res.Rooms = removeWhere(r.s.rooms, func(rm *models.Room) bool { return rm.PropertyID == id })
	r.s.tenants, res.Tenants = removeWhere(r.s.tenants, func(t *models.Tenant) bool { return t.PropertyID == id })
	r.s.payments, res.Payments = removeWhere(r.s.payments, func(p *models.RentPayment) bool { return p.PropertyID == id })
	return res, nil
}
