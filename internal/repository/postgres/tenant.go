package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

const tenantColumns = `id, first_name, last_name, email, phone, room_id, property_id, move_in_date, move_out_date,
	is_active, emergency_contact, profile_picture, documents, additional_members, created_at, updated_at`

type tenantRepository struct {
	s  *Store
	db querier
}

func scanTenant(row scanner) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.RoomID, &t.PropertyID,
		&t.MoveInDate, &t.MoveOutDate, &t.IsActive,
		jsonb(&t.EmergencyContact), &t.ProfilePicture, jsonb(&t.Documents), jsonb(&t.AdditionalMembers),
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func tenantArgs(t *models.Tenant) []any {
	return []any{
		t.ID, t.FirstName, t.LastName, t.Email, t.Phone, t.RoomID, t.PropertyID,
		t.MoveInDate, t.MoveOutDate, t.IsActive,
		jsonb(t.EmergencyContact), t.ProfilePicture, jsonb(t.Documents), jsonb(t.AdditionalMembers),
		t.CreatedAt, t.UpdatedAt,
	}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	t := tenant.Clone()
	r.s.stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	query := `INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	if _, err := r.db.ExecContext(ctx, query, tenantArgs(t)...); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return t, nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	return r.get(ctx, r.db, id, "")
}

func (r *tenantRepository) get(ctx context.Context, q querier, id, lock string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1` + lock
	t, err := scanTenant(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", notFound(err))
	}
	return t, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tenantRepository) Update(ctx context.Context, id string, patch models.TenantPatch, at time.Time) (*models.Tenant, error) {
	var out *models.Tenant
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		t, err := r.get(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		t.Apply(patch)
		t.UpdatedAt = at
		query := `UPDATE tenants SET first_name = $2, last_name = $3, email = $4, phone = $5, room_id = $6,
			property_id = $7, move_in_date = $8, move_out_date = $9, is_active = $10, emergency_contact = $11,
			profile_picture = $12, documents = $13, additional_members = $14, updated_at = $15
			WHERE id = $1`
		args := append(tenantArgs(t)[:14], t.UpdatedAt)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update tenant: %w", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tenantRepository) Delete(ctx context.Context, id string) error {
	n, err := execCount(ctx, r.db, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete tenant: %w", repository.ErrNotFound)
	}
	return nil
}

// Vacate deactivates the tenant and frees its room in one transaction.
// The room's updated_at is not touched.
func (r *tenantRepository) Vacate(ctx context.Context, id string, at time.Time) (*models.Tenant, error) {
	var out *models.Tenant
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		query := `UPDATE tenants SET is_active = FALSE, move_out_date = $2, updated_at = $2
			WHERE id = $1 RETURNING ` + tenantColumns
		t, err := scanTenant(tx.QueryRowContext(ctx, query, id, at))
		if err != nil {
			return fmt.Errorf("failed to vacate tenant: %w", notFound(err))
		}
		if _, err := tx.ExecContext(ctx, `UPDATE rooms SET status = $2 WHERE id = $1`, t.RoomID, models.RoomStatusAvailable); err != nil {
			return fmt.Errorf("failed to free room: %w", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
