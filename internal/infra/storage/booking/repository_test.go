package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
)

var (
	jan10 = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	jan12 = time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC).Add(-time.Microsecond)
	now   = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRow() []string {
	return []string{
		"id", "equipment_id", "renter_id", "start_date", "end_date", "status",
		"equipment_cost", "platform_cost", "owner_receivable_amount", "total_price",
		"created_at", "updated_at",
	}
}

func detailsRow() []string {
	return append(bookingRow(), "name", "owner_id", "price_per_day", "image_url", "first_name", "last_name", "email")
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings \(equipment_id,renter_id,start_date,end_date,status,equipment_cost,platform_cost,owner_receivable_amount,total_price\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\) RETURNING id, created_at, updated_at`).
		WithArgs(int64(5), int64(2), jan10, jan12, "Pending", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		EquipmentID:           5,
		RenterID:              2,
		StartDate:             jan10,
		EndDate:               jan12,
		Status:                domain.StatusPending,
		EquipmentCost:         decimal.NewFromInt(150),
		PlatformCost:          decimal.RequireFromString("7.50"),
		OwnerReceivableAmount: decimal.NewFromInt(150),
		TotalPrice:            decimal.RequireFromString("157.50"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

	_, err := repo.Create(context.Background(), &domain.Booking{EquipmentID: 5, Status: domain.StatusPending})

	assert.ErrorIs(t, err, ErrDatesConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b WHERE b.id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(bookingRow()))

	_, err := repo.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetWithOwner_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM bookings b JOIN equipment e ON e.id = b.equipment_id WHERE b.id = \$1 FOR UPDATE OF b`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(append(bookingRow(), "owner_id")).
			AddRow(int64(7), int64(5), int64(2), jan10, jan12, "Approved", "150.00", "7.50", "150.00", "157.50", now, now, int64(9)))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	got, err := repo.GetWithOwner(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, int64(9), got.OwnerID)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.True(t, decimal.RequireFromString("157.5").Equal(got.TotalPrice))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDetailsByID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM bookings b JOIN equipment e ON e.id = b.equipment_id JOIN users u ON u.id = b.renter_id WHERE b.id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(detailsRow()).
			AddRow(int64(7), int64(5), int64(2), jan10, jan12, "Pending", "150.00", "7.50", "150.00", "157.50", now, now,
				"Drill", int64(9), "50.00", "", "Ann", "Renter", "ann@example.com"))

	got, err := repo.GetDetailsByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Drill", got.EquipmentName)
	assert.Equal(t, int64(9), got.EquipmentOwnerID)
	assert.Equal(t, "ann@example.com", got.RenterEmail)
	assert.Equal(t, 3, got.Days())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByOwner_WithStatus(t *testing.T) {
	repo, _, mock := newRepo(t)
	status := domain.StatusPending

	mock.ExpectQuery(`SELECT (.+) FROM bookings b JOIN equipment e ON e.id = b.equipment_id JOIN users u ON u.id = b.renter_id WHERE e.owner_id = \$1 AND b.status = \$2 ORDER BY b.created_at DESC, b.id DESC`).
		WithArgs(int64(9), "Pending").
		WillReturnRows(sqlmock.NewRows(detailsRow()).
			AddRow(int64(8), int64(5), int64(3), jan10, jan12, "Pending", "150.00", "7.50", "150.00", "157.50", now, now,
				"Drill", int64(9), "50.00", "", "Bob", "B", "bob@example.com").
			AddRow(int64(7), int64(5), int64(2), jan10, jan12, "Pending", "150.00", "7.50", "150.00", "157.50", now, now,
				"Drill", int64(9), "50.00", "", "Ann", "A", "ann@example.com"))

	got, err := repo.ListByOwner(context.Background(), 9, domain.BookingsFilter{Status: &status})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(8), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListActiveByEquipment_WithPeriod(t *testing.T) {
	repo, _, mock := newRepo(t)
	period := domain.DateRange{Start: jan10, End: jan12}

	mock.ExpectQuery(`SELECT (.+) FROM bookings b WHERE b.equipment_id = \$1 AND b.status <> \$2 AND b.start_date <= \$3 AND b.end_date >= \$4 ORDER BY b.start_date ASC`).
		WithArgs(int64(5), "Rejected", jan12, jan10).
		WillReturnRows(sqlmock.NewRows(bookingRow()).
			AddRow(int64(7), int64(5), int64(2), jan10, jan12, "Approved", "150.00", "7.50", "150.00", "157.50", now, now))

	got, err := repo.ListActiveByEquipment(context.Background(), 5, &period)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusApproved, got[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("Approved", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 7, domain.StatusApproved))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE bookings`).
		WithArgs("Approved", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 7, domain.StatusApproved)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
