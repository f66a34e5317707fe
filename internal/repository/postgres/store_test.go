package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/rentbook/internal/models"
	"github.com/Kerhoff/rentbook/internal/repository"
)

var ts = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

var (
	propertyCols = []string{"id", "name", "address", "city", "state", "zip_code", "type", "total_rooms", "description", "phone_number", "email", "created_at", "updated_at"}
	roomCols     = []string{"id", "property_id", "number", "type", "status", "rent_amount", "floor", "amenities", "created_at", "updated_at"}
	tenantCols   = []string{"id", "first_name", "last_name", "email", "phone", "room_id", "property_id", "move_in_date", "move_out_date", "is_active", "emergency_contact", "profile_picture", "documents", "additional_members", "created_at", "updated_at"}
	paymentCols  = []string{"id", "tenant_id", "room_id", "property_id", "amount", "due_date", "paid_date", "status", "notes", "created_at", "updated_at"}
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db,
		WithClock(func() time.Time { return ts }),
		WithIDGenerator(func() string { return "gen-1" }),
	), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func tenantRow(rows *sqlmock.Rows, id, roomID string, active bool, moveOut any) *sqlmock.Rows {
	return rows.AddRow(id, "Asha", "Rao", "asha@example.com", "9876543210", roomID, "p1",
		ts, moveOut, active, []byte(`{"name":"Ravi","phone":"9000000000"}`), nil,
		[]byte(`[]`), []byte(`[{"id":"m1","name":"Ravi","relation":"brother"}]`), ts, ts)
}

func TestPropertyCreate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(q("INSERT INTO properties")).
		WithArgs("gen-1", "Lakeview", "1 Lake Rd", "Pune", "MH", "411001", "apartment", 4, nil, nil, nil, ts, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p, err := s.Properties().Create(context.Background(), &models.Property{
		Name: "Lakeview", Address: "1 Lake Rd", City: "Pune", State: "MH", ZipCode: "411001",
		Type: models.PropertyTypeApartment, TotalRooms: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", p.ID)
	assert.Equal(t, ts, p.CreatedAt)
	assert.Equal(t, ts, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyGetByIDNotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(q("SELECT id, name")).WithArgs("missing").WillReturnRows(sqlmock.NewRows(propertyCols))

	_, err := s.Properties().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomListScansArraysAndDecimals(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(q("FROM rooms ORDER BY seq")).WillReturnRows(sqlmock.NewRows(roomCols).
		AddRow("r1", "p1", "101", "single", "occupied", "5000.00", int64(2), "{AC,WiFi}", ts, ts).
		AddRow("r2", "p1", "102", "double", "available", "7500.50", nil, nil, ts, ts))

	rooms, err := s.Rooms().List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, models.RoomStatusOccupied, rooms[0].Status)
	assert.True(t, decimal.NewFromInt(5000).Equal(rooms[0].RentAmount))
	require.NotNil(t, rooms[0].Floor)
	assert.Equal(t, 2, *rooms[0].Floor)
	assert.Equal(t, []string{"AC", "WiFi"}, rooms[0].Amenities)

	assert.Nil(t, rooms[1].Floor)
	assert.Nil(t, rooms[1].Amenities)
	assert.Equal(t, "7500.5", rooms[1].RentAmount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomUpdateRunsInTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	later := ts.Add(time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM rooms WHERE id = $1 FOR UPDATE")).WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(roomCols).AddRow("r1", "p1", "101", "single", "available", "5000", nil, nil, ts, ts))
	mock.ExpectExec(q("UPDATE rooms SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	status := models.RoomStatusMaintenance
	rm, err := s.Rooms().Update(context.Background(), "r1", models.RoomPatch{Status: &status}, later)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusMaintenance, rm.Status)
	assert.Equal(t, later, rm.UpdatedAt)
	assert.Equal(t, ts, rm.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomUpdateMissingRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM rooms WHERE id = $1 FOR UPDATE")).WithArgs("nope").WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectRollback()

	_, err := s.Rooms().Update(context.Background(), "nope", models.RoomPatch{}, ts)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantVacate(t *testing.T) {
	s, mock := newMockStore(t)
	at := ts.Add(24 * time.Hour)
	mock.ExpectBegin()
	mock.ExpectQuery(q("UPDATE tenants SET is_active = FALSE")).WithArgs("t1", at).
		WillReturnRows(tenantRow(sqlmock.NewRows(tenantCols), "t1", "r1", false, at))
	mock.ExpectExec(q("UPDATE rooms SET status = $2 WHERE id = $1")).WithArgs("r1", "available").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tn, err := s.Tenants().Vacate(context.Background(), "t1", at)
	require.NoError(t, err)
	assert.False(t, tn.IsActive)
	require.NotNil(t, tn.MoveOutDate)
	assert.Equal(t, at, *tn.MoveOutDate)
	require.NotNil(t, tn.EmergencyContact)
	assert.Equal(t, "Ravi", tn.EmergencyContact.Name)
	require.Len(t, tn.AdditionalMembers, 1)
	assert.Equal(t, "brother", tn.AdditionalMembers[0].Relation)
	assert.Nil(t, tn.ProfilePicture)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantVacateUnknownChangesNothing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("UPDATE tenants SET is_active = FALSE")).WithArgs("ghost", ts).
		WillReturnRows(sqlmock.NewRows(tenantCols))
	mock.ExpectRollback()

	_, err := s.Tenants().Vacate(context.Background(), "ghost", ts)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantVacateRollsBackWhenRoomUpdateFails(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("UPDATE tenants SET is_active = FALSE")).
		WillReturnRows(tenantRow(sqlmock.NewRows(tenantCols), "t1", "r1", false, ts))
	mock.ExpectExec(q("UPDATE rooms SET status")).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := s.Tenants().Vacate(context.Background(), "t1", ts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to free room")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyDeleteCascades(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM properties WHERE id = $1")).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM rooms WHERE property_id = $1")).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM tenants WHERE property_id = $1")).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM rent_payments WHERE property_id = $1")).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	res, err := s.Properties().Delete(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, repository.DeleteResult{Rooms: 2, Tenants: 1, Payments: 3}, *res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyDeleteMissingRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM properties WHERE id = $1")).WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.Properties().Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyDeleteFailureRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM properties")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM rooms")).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := s.Properties().Delete(context.Background(), "p1")
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentMarkPaid(t *testing.T) {
	s, mock := newMockStore(t)
	paidAt := ts.Add(-48 * time.Hour)
	now := ts.Add(2 * time.Hour)
	mock.ExpectQuery(q("UPDATE rent_payments SET status = $2, paid_date = $3, updated_at = $4")).WithArgs("pay1", "paid", paidAt, now).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow("pay1", "t1", "r1", "p1", "5000.00", ts, paidAt, "paid", nil, ts, now))

	p, err := s.Payments().MarkPaid(context.Background(), "pay1", paidAt, now)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, p.Status)
	require.NotNil(t, p.PaidDate)
	assert.Equal(t, paidAt, *p.PaidDate)
	assert.Equal(t, now, p.UpdatedAt)
	assert.Nil(t, p.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentDeleteMissing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(q("DELETE FROM rent_payments WHERE id = $1")).WithArgs("x").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Payments().Delete(context.Background(), "x")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotReadsAllTablesInOneTransaction(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM properties ORDER BY seq")).WillReturnRows(sqlmock.NewRows(propertyCols).
		AddRow("p1", "Lakeview", "1 Lake Rd", "Pune", "MH", "411001", "apartment", int64(4), nil, nil, nil, ts, ts))
	mock.ExpectQuery(q("FROM rooms ORDER BY seq")).WillReturnRows(sqlmock.NewRows(roomCols))
	mock.ExpectQuery(q("FROM tenants ORDER BY seq")).WillReturnRows(tenantRow(sqlmock.NewRows(tenantCols), "t1", "r1", true, nil))
	mock.ExpectQuery(q("FROM rent_payments ORDER BY seq")).WillReturnRows(sqlmock.NewRows(paymentCols))
	mock.ExpectCommit()

	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Properties, 1)
	assert.Equal(t, models.PropertyTypeApartment, snap.Properties[0].Type)
	assert.Empty(t, snap.Rooms)
	require.Len(t, snap.Tenants, 1)
	assert.True(t, snap.Tenants[0].IsActive)
	assert.Nil(t, snap.Tenants[0].MoveOutDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
