package update_booking_status

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EquipShare-BookingService/pkg/metrics"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

const (
	ownerID  = int64(9)
	renterID = int64(2)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type memRepo struct {
	mu      sync.Mutex
	booking *domain.BookingWithOwner
	writes  int
	getErr  error
}

func (r *memRepo) GetWithOwner(_ context.Context, id int64) (*domain.BookingWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.booking.Status = status
	r.writes++
	return nil
}

func (r *memRepo) status() domain.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booking.Status
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newRepo(status domain.BookingStatus) *memRepo {
	return &memRepo{booking: &domain.BookingWithOwner{
		Booking: domain.Booking{ID: 7, EquipmentID: 5, RenterID: renterID, Status: status},
		OwnerID: ownerID,
	}}
}

func TestExecute_ApproveIsIdempotent(t *testing.T) {
	repo := newRepo(domain.StatusPending)
	uc := NewUseCase(repo, passthroughTx{}, metrics.Noop{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{BookingID: 7, Status: "Approved", UserID: ownerID})
	require.NoError(t, err)
	assert.True(t, first.Changed)
	assert.Equal(t, "Pending", first.PreviousStatus)

	second, err := uc.Execute(context.Background(), &Request{BookingID: 7, Status: "Approved", UserID: ownerID})
	require.NoError(t, err)
	assert.False(t, second.Changed)

	assert.Equal(t, domain.StatusApproved, repo.status())
	assert.Equal(t, 1, repo.writes)
}

func TestExecute_NonOwnerLeavesStatusUnchanged(t *testing.T) {
	for _, userID := range []int64{renterID, 3} {
		repo := newRepo(domain.StatusPending)
		uc := NewUseCase(repo, passthroughTx{}, metrics.Noop{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Status: "Approved", UserID: userID})

		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusPending, repo.status())
		assert.Zero(t, repo.writes)
	}
}

func TestExecute_Transitions(t *testing.T) {
	tests := []struct {
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{from: domain.StatusPending, to: "Rejected"},
		{from: domain.StatusPending, to: "completed"},
		{from: domain.StatusApproved, to: "Completed"},
		{from: domain.StatusApproved, to: "Rejected"},
		{from: domain.StatusApproved, to: "Pending", wantErr: ErrInvalidInput},
		{from: domain.StatusCompleted, to: "Approved", wantErr: ErrInvalidTransition},
		{from: domain.StatusRejected, to: "Approved", wantErr: ErrInvalidTransition},
		{from: domain.StatusRejected, to: "Rejected"},
		{from: domain.StatusPending, to: "Cancelled", wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+tt.to, func(t *testing.T) {
			repo := newRepo(tt.from)
			uc := NewUseCase(repo, passthroughTx{}, metrics.Noop{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Status: tt.to, UserID: ownerID})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.status())
				return
			}
			require.NoError(t, err)
			want, _ := domain.ParseBookingStatus(tt.to)
			assert.Equal(t, want, repo.status())
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	repo := newRepo(domain.StatusPending)
	uc := NewUseCase(repo, passthroughTx{}, metrics.Noop{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 8, Status: "Approved", UserID: ownerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_RepositoryFailure(t *testing.T) {
	repo := newRepo(domain.StatusPending)
	repo.getErr = errors.New("connection reset")
	uc := NewUseCase(repo, passthroughTx{}, metrics.Noop{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 7, Status: "Approved", UserID: ownerID})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_WithPostgresTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := bookingRepo.NewRepository(wrapped)
	uc := NewUseCase(repo, txmanager.New(wrapped, nil), metrics.Noop{}, nopLogger{})

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "equipment_id", "renter_id", "start_date", "end_date", "status",
		"equipment_cost", "platform_cost", "owner_receivable_amount", "total_price",
		"created_at", "updated_at", "owner_id",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM bookings b JOIN equipment e ON e.id = b.equipment_id WHERE b.id = \$1 FOR UPDATE OF b`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(7), int64(5), renterID, now, now, "Pending", "50.00", "2.50", "50.00", "52.50", now, now, ownerID))
	mock.ExpectExec(`UPDATE bookings SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs("Rejected", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 7, Status: "Rejected", UserID: ownerID})

	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
