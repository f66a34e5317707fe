package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

const paymentColumns = `id, tenant_id, room_id, property_id, amount, due_date, paid_date, status, notes, created_at, updated_at`

type paymentRepository struct {
	s  *Store
	db querier
}

func scanPayment(row scanner) (*models.RentPayment, error) {
	p := &models.RentPayment{}
	err := row.Scan(
		&p.ID, &p.TenantID, &p.RoomID, &p.PropertyID, &p.Amount, &p.DueDate,
		&p.PaidDate, &p.Status, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.RentPayment) (*models.RentPayment, error) {
	p := payment.Clone()
	r.s.stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	query := `INSERT INTO rent_payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.TenantID, p.RoomID, p.PropertyID, p.Amount, p.DueDate,
		p.PaidDate, p.Status, p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*models.RentPayment, error) {
	return r.get(ctx, r.db, id, "")
}

func (r *paymentRepository) get(ctx context.Context, q querier, id, lock string) (*models.RentPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM rent_payments WHERE id = $1` + lock
	p, err := scanPayment(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", notFound(err))
	}
	return p, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*models.RentPayment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM rent_payments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var out []*models.RentPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepository) Update(ctx context.Context, id string, patch models.RentPaymentPatch, at time.Time) (*models.RentPayment, error) {
	var out *models.RentPayment
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		p, err := r.get(ctx, tx, id, " FOR UPDATE")
		if err != nil {
			return err
		}
		p.Apply(patch)
		p.UpdatedAt = at
		query := `UPDATE rent_payments SET amount = $2, due_date = $3, paid_date = $4, status = $5,
			notes = $6, updated_at = $7
			WHERE id = $1`
		if _, err := tx.ExecContext(ctx, query,
			p.ID, p.Amount, p.DueDate, p.PaidDate, p.Status, p.Notes, p.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id string) error {
	n, err := execCount(ctx, r.db, `DELETE FROM rent_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete payment: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *paymentRepository) MarkPaid(ctx context.Context, id string, paidDate, now time.Time) (*models.RentPayment, error) {
	query := `UPDATE rent_payments SET status = $2, paid_date = $3, updated_at = $4
		WHERE id = $1 RETURNING ` + paymentColumns
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id, models.PaymentStatusPaid, paidDate, now))
	if err != nil {
		return nil, fmt.Errorf("failed to mark payment paid: %w", notFound(err))
	}
	return p, nil
}
