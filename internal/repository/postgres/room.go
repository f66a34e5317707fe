package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

const roomColumns = `id, property_id, number, type, status, rent_amount, floor, amenities, created_at, updated_at`

type roomRepository struct {
	s  *Store
	db querier
}

func scanRoom(row scanner) (*models.Room, error) {
	rm := &models.Room{}
	var amenities pq.StringArray
	err := row.Scan(
		&rm.ID, &rm.PropertyID, &rm.Number, &rm.Type, &rm.Status,
		&rm.RentAmount, &rm.Floor, &amenities, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if amenities != nil {
		rm.Amenities = []string(amenities)
	}
	return rm, nil
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) (*models.Room, error) {
	rm := room.Clone()
	r.s.stamp(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt)
	query := `INSERT INTO rooms (` + roomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		rm.ID, rm.PropertyID, rm.Number, rm.Type, rm.Status,
		rm.RentAmount, rm.Floor, pq.Array(rm.Amenities), rm.CreatedAt, rm.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return rm, nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	return r.get(ctx, r.db, id, "")
}

func (r *roomRepository) get(ctx context.Context, q querier, id, lock string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1` + lock
	rm, err := scanRoom(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", notFound(err))
	}
	return rm, nil
}

func (r *roomRepository) List(ctx context.Context) ([]*models.Room, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var out []*models.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *roomRepository) Update(ctx context.Context, id string, patch models.RoomPatch, at time.Time) (*models.Room, error) {
	var out *models.Room
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		rm, err := r.get(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		rm.Apply(patch)
		rm.UpdatedAt = at
		query := `UPDATE rooms SET property_id = $2, number = $3, type = $4, status = $5,
			rent_amount = $6, floor = $7, amenities = $8, updated_at = $9
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, query,
			rm.ID, rm.PropertyID, rm.Number, rm.Type, rm.Status,
			rm.RentAmount, rm.Floor, pq.Array(rm.Amenities), rm.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to update room: %w", err)
		}
		out = rm
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *roomRepository) Delete(ctx context.Context, id string) error {
	n, err := execCount(ctx, r.db, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete room: %w", repository.ErrNotFound)
	}
	return nil
}
