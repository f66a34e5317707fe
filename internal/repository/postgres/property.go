package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

const propertyColumns = `id, name, address, city, state, zip_code, type, total_rooms, description, phone_number, email, created_at, updated_at`

type propertyRepository struct {
	s  *Store
	db querier
}

func scanProperty(row scanner) (*models.Property, error) {
	p := &models.Property{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.ZipCode, &p.Type,
		&p.TotalRooms, &p.Description, &p.PhoneNumber, &p.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) (*models.Property, error) {
	p := property.Clone()
	r.s.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Address, p.City, p.State, p.ZipCode, p.Type,
		p.TotalRooms, p.Description, p.PhoneNumber, p.Email, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return p, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	return r.get(ctx, r.db, id, "")
}

func (r *propertyRepository) get(ctx context.Context, q querier, id, lock string) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1` + lock
	p, err := scanProperty(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", notFound(err))
	}
	return p, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]*models.Property, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+propertyColumns+` FROM properties ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepository) Update(ctx context.Context, id string, patch models.PropertyPatch, at time.Time) (*models.Property, error) {
	var out *models.Property
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		p, err := r.get(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		p.Apply(patch)
		p.UpdatedAt = at
		query := `UPDATE properties SET name = $2, address = $3, city = $4, state = $5, zip_code = $6,
			type = $7, total_rooms = $8, description = $9, phone_number = $10, email = $11, updated_at = $12
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, p.Address, p.City, p.State, p.ZipCode,
			p.Type, p.TotalRooms, p.Description, p.PhoneNumber, p.Email, p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to update property: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the property and its dependents in one transaction
func (r *propertyRepository) Delete(ctx context.Context, id string) (*repository.DeleteResult, error) {
	res := &repository.DeleteResult{}
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		n, err := execCount(ctx, tx, `DELETE FROM properties WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete property: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("failed to delete property: %w", repository.ErrNotFound)
		}
		if res.Rooms, err = execCount(ctx, tx, `DELETE FROM rooms WHERE property_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete property rooms: %w", err)
		}
		if res.Tenants, err = execCount(ctx, tx, `DELETE FROM tenants WHERE property_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete property tenants: %w", err)
		}
		if res.Payments, err = execCount(ctx, tx, `DELETE FROM rent_payments WHERE property_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete property payments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func execCount(ctx context.Context, q querier, query string, args ...any) (int, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
