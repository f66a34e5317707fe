package memory

import (
	"context"
	"slices"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

type roomRepository struct {
	s *Store
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	rm := room.Clone()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stamp(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	r.s.rooms = append(r.s.rooms, rm)
	return rm.Clone(), nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.rooms, func(rm *models.Room) bool { return rm.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	return r.s.rooms[i].Clone(), nil
}

func (r *roomRepository) List(ctx context.Context) ([]*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*models.Room, 0, len(r.s.rooms))
	for _, rm := range r.s.rooms {
		out = append(out, rm.Clone())
	}
	return out, nil
}

func (r *roomRepository) Update(ctx context.Context, id string, patch models.RoomPatch, at time.Time) (*models.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.rooms, func(rm *models.Room) bool { return rm.ID == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	rm := r.s.rooms[i]
	rm.Apply(patch)
	rm.UpdatedAt = at
	return rm.Clone(), nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.rooms, func(rm *models.Room) bool { return rm.ID == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.s.rooms = slices.Delete(r.s.rooms, i, i+1)
	return nil
}
