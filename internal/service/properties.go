package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/events"
	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

func (s *Service) AddProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := property.Clone()
	p.ID = ""
	p.CreatedAt = s.now()
	created, err := s.store.Properties().Create(ctx, p)
	s.record(ctx, events.EntityProperty, events.ActionCreated, created, err)
	if err != nil {
		return nil, fmt.Errorf("failed to add property: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"property_id": created.ID, "name": created.Name}).Info("Property added")
	return created, nil
}

func (s *Service) UpdateProperty(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.store.Properties().Update(ctx, id, patch, s.now())
	s.record(ctx, events.EntityProperty, events.ActionUpdated, updated, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update property %s: %w", id, err)
	}
	return updated, nil
}

// DeleteProperty removes the property with its rooms, tenants and payments
func (s *Service) DeleteProperty(ctx context.Context, id string) (*repository.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.store.Properties().Delete(ctx, id)
	s.record(ctx, events.EntityProperty, events.ActionDeleted, map[string]any{"id": id, "removed": res}, err)
	if err != nil {
		return nil, fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	s.logger.WithFields(logrus.Fields{
		"property_id": id,
		"rooms":       res.Rooms,
		"tenants":     res.Tenants,
		"payments":    res.Payments,
	}).Info("Property deleted")
	return res, nil
}

func (s *Service) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	p, err := s.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get property %s: %w", id, err)
	}
	return p, nil
}

func (s *Service) ListProperties(ctx context.Context) ([]*models.Property, error) {
	list, err := s.store.Properties().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return list, nil
}
