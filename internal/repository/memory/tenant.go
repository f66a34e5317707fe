package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

type tenantRepository struct {
	s *Store
}

func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	t := tenant.Clone()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	r.s.tenants = append(r.s.tenants, t)
	return t.Clone(), nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.tenants, func(t *models.Tenant) bool { return t.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return r.s.tenants[i].Clone(), nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		out = append(out, t.Clone())
	}
	return out, nil
}

func (r *tenantRepository) Update(ctx context.Context, id string, patch models.TenantPatch, at time.Time) (*models.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.tenants, func(t *models.Tenant) bool { return t.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	t := r.s.tenants[i]
	t.Apply(patch)
	t.UpdatedAt = at
	return t.Clone(), nil
}

func (r *tenantRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.tenants, func(t *models.Tenant) bool { return t.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.s.tenants = slices.Delete(r.s.tenants, i, i+1)
	return nil
}

func (r *tenantRepository) Vacate(ctx context.Context, id string, at time.Time) (*models.Tenant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.tenants, func(t *models.Tenant) bool { return t.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	t := r.s.tenants[i]
	out := at
	t.IsActive = false
	t.MoveOutDate = &out
	t.UpdatedAt = at

	// room updatedAt is left as is
	for _, rm := range r.s.rooms {
		if rm.ID == t.RoomID {
			rm.Status = models.RoomStatusAvailable
		}
	}
	return t.Clone(), nil
}
