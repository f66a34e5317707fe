package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/events"
	"github.com/Kerhoff/rentbook/internal/models"
)

// AddTenant stores a tenant. The room is not marked occupied.
func (s *Service) AddTenant(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if len(tenant.AdditionalMembers) > models.MaxAdditionalMembers {
		return nil, ErrMemberLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := tenant.Clone()
	now := s.now()
	t.ID = ""
	t.CreatedAt = now
	for i := range t.AdditionalMembers {
		if t.AdditionalMembers[i].ID == "" {
			t.AdditionalMembers[i].ID = s.newUUID()
		}
	}
	for i := range t.Documents {
		if t.Documents[i].ID == "" {
			t.Documents[i].ID = s.newUUID()
		}
		if t.Documents[i].UploadedAt.IsZero() {
			t.Documents[i].UploadedAt = now
		}
	}

	created, err := s.store.Tenants().Create(ctx, t)
	s.record(ctx, events.EntityTenant, events.ActionCreated, created, err)
	if err != nil {
		return nil, fmt.Errorf("failed to add tenant: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"tenant_id": created.ID, "room_id": created.RoomID}).Infof("Tenant %s added", created.FullName())
	return created, nil
}

func (s *Service) UpdateTenant(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error) {
	if len(patch.AdditionalMembers) > models.MaxAdditionalMembers {
		return nil, ErrMemberLimit
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateTenant(ctx, id, patch)
}

func (s *Service) updateTenant(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error) {
	updated, err := s.store.Tenants().Update(ctx, id, patch, s.now())
	s.record(ctx, events.EntityTenant, events.ActionUpdated, updated, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update tenant %s: %w", id, err)
	}
	return updated, nil
}

// DeleteTenant removes only the tenant; its payments are kept
func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Tenants().Delete(ctx, id)
	s.record(ctx, events.EntityTenant, events.ActionDeleted, map[string]string{"id": id}, err)
	if err != nil {
		return fmt.Errorf("failed to delete tenant %s: %w", id, err)
	}
	return nil
}

// VacateTenant deactivates the tenant and frees its room in one step
func (s *Service) VacateTenant(ctx context.Context, id string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vacated, err := s.store.Tenants().Vacate(ctx, id, s.now())
	s.record(ctx, events.EntityTenant, events.ActionVacated, vacated, err)
	if err != nil {
		return nil, fmt.Errorf("failed to vacate tenant %s: %w", id, err)
	}
	s.logger.WithFields(logrus.Fields{"tenant_id": id, "room_id": vacated.RoomID}).Info("Tenant vacated")
	return vacated, nil
}

// AddHouseholdMember appends a member to the tenant, rejecting a sixth one
func (s *Service) AddHouseholdMember(ctx context.Context, tenantID string, member models.HouseholdMember) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Tenants().GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	if len(t.AdditionalMembers) >= models.MaxAdditionalMembers {
		return nil, ErrMemberLimit
	}
	member.ID = s.newUUID()
	members := append(t.AdditionalMembers, member)
	return s.updateTenant(ctx, tenantID, models.TenantPatch{AdditionalMembers: members})
}

func (s *Service) RemoveHouseholdMember(ctx context.Context, tenantID, memberID string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Tenants().GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	members := make([]models.HouseholdMember, 0, len(t.AdditionalMembers))
	for _, m := range t.AdditionalMembers {
		if m.ID != memberID {
			members = append(members, m)
		}
	}
	if len(members) == len(t.AdditionalMembers) {
		return nil, ErrMemberNotFound
	}
	return s.updateTenant(ctx, tenantID, models.TenantPatch{AdditionalMembers: members})
}

// AddDocument attaches a document to the tenant, stamping its id and upload time
func (s *Service) AddDocument(ctx context.Context, tenantID string, doc models.Document) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Tenants().GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	doc.ID = s.newUUID()
	doc.UploadedAt = s.now()
	return s.updateTenant(ctx, tenantID, models.TenantPatch{Documents: append(t.Documents, doc)})
}

func (s *Service) RemoveDocument(ctx context.Context, tenantID, documentID string) (*models.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Tenants().GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", tenantID, err)
	}
	docs := make([]models.Document, 0, len(t.Documents))
	for _, d := range t.Documents {
		if d.ID != documentID {
			docs = append(docs, d)
		}
	}
	if len(docs) == len(t.Documents) {
		return nil, ErrDocumentNotFound
	}
	return s.updateTenant(ctx, tenantID, models.TenantPatch{Documents: docs})
}

func (s *Service) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	t, err := s.store.Tenants().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant %s: %w", id, err)
	}
	return t, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	list, err := s.store.Tenants().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return list, nil
}
