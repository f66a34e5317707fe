package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/events"
	"github.com/Kerhoff/rentbook/internal/models"
)

// AddRoom stores a room. The property reference is not checked.
func (s *Service) AddRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := room.Clone()
	r.ID = ""
	r.CreatedAt = s.now()
	if r.Status == "" {
		r.Status = models.RoomStatusAvailable
	}
	created, err := s.store.Rooms().Create(ctx, r)
	s.record(ctx, events.EntityRoom, events.ActionCreated, created, err)
	if err != nil {
		return nil, fmt.Errorf("failed to add room: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"room_id": created.ID, "property_id": created.PropertyID}).Info("Room added")
	return created, nil
}

func (s *Service) UpdateRoom(ctx context.Context, id string, patch models.RoomPatch) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.store.Rooms().Update(ctx, id, patch, s.now())
	s.record(ctx, events.EntityRoom, events.ActionUpdated, updated, err)
	if err != nil {
		return nil, fmt.Errorf("failed to update room %s: %w", id, err)
	}
	return updated, nil
}

// DeleteRoom removes only the room; tenants and payments that reference it are kept
func (s *Service) DeleteRoom(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Rooms().Delete(ctx, id)
	s.record(ctx, events.EntityRoom, events.ActionDeleted, map[string]string{"id": id}, err)
	if err != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, err)
	}
	return nil
}

func (s *Service) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	r, err := s.store.Rooms().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room %s: %w", id, err)
	}
	return r, nil
}

func (s *Service) ListRooms(ctx context.Context) ([]*models.Room, error) {
	list, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return list, nil
}
