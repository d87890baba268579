package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/availability"
	"github.com/m04kA/EquipShare-BookingService/internal/service/pricing"
	"github.com/m04kA/EquipShare-BookingService/pkg/keylock"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

const (
	ownerID  = int64(9)
	renterID = int64(2)
	drillID  = int64(5)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type countingMetrics struct {
	created   atomic.Int64
	conflicts atomic.Int64
}

func (m *countingMetrics) IncBookingCreated()  { m.created.Add(1) }
func (m *countingMetrics) IncBookingConflict() { m.conflicts.Add(1) }

// memStore is a goroutine safe stand-in for the equipment and booking tables.
// It does not enforce the overlap constraint itself.
type memStore struct {
	mu        sync.Mutex
	equipment map[int64]*domain.Equipment
	bookings  []*domain.Booking
	nextID    int64
	createErr error
	readDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		equipment: map[int64]*domain.Equipment{
			drillID: {ID: drillID, OwnerID: ownerID, PricePerDay: decimal.NewFromInt(50), IsAvailable: true},
		},
	}
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	eq, ok := s.equipment[id]
	if !ok {
		return nil, equipmentRepo.ErrEquipmentNotFound
	}
	copied := *eq
	return &copied, nil
}

func (s *memStore) ListActiveByEquipment(_ context.Context, equipmentID int64, period *domain.DateRange) ([]*domain.Booking, error) {
	s.mu.Lock()
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.EquipmentID != equipmentID || !b.Status.BlocksDates() {
			continue
		}
		if period != nil && !period.Overlaps(b.Range()) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	s.mu.Unlock()

	// widens the window between check and insert
	time.Sleep(s.readDelay)
	return out, nil
}

func (s *memStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	copied := *b
	s.bookings = append(s.bookings, &copied)
	return b, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 0, 0, 0, 0, time.UTC)
}

// flakyTx откатывает первые failures попыток с ошибкой сериализации, не вызывая fn
type flakyTx struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakyTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.calls.Add(1) <= f.failures {
		return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, &pq.Error{Code: "40001"})
	}
	return fn(ctx)
}

func newUseCase(t *testing.T, store *memStore, tx TransactionManager, m *countingMetrics, opts ...Option) *UseCase {
	t.Helper()
	calc, err := pricing.NewCalculator(decimal.RequireFromString("0.05"))
	require.NoError(t, err)

	return NewUseCase(
		store,
		store,
		availability.NewChecker(store),
		calc,
		tx,
		keylock.New[int64](),
		m,
		nopLogger{},
		append([]Option{
			WithTimeProvider(fixedClock{now: time.Date(2025, 1, 1, 15, 0, 0, 0, time.UTC)}),
			WithLockTimeout(5 * time.Second),
		}, opts...)...,
	)
}

func TestExecute_MultiDayPriceBreakdown(t *testing.T) {
	store := newMemStore()
	m := &countingMetrics{}
	uc := newUseCase(t, store, passthroughTx{}, m)

	resp, err := uc.Execute(context.Background(), &Request{
		RenterID:    renterID,
		EquipmentID: drillID,
		Booking:     domain.MultiDay(day(10), day(12)),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, day(10), resp.StartDate)
	assert.Equal(t, domain.EndOfDay(day(12)), resp.EndDate)
	assert.Equal(t, "150.00", domain.FormatMoney(resp.EquipmentCost))
	assert.Equal(t, "7.50", domain.FormatMoney(resp.PlatformCost))
	assert.Equal(t, "150.00", domain.FormatMoney(resp.OwnerReceivableAmount))
	assert.Equal(t, "157.50", domain.FormatMoney(resp.TotalPrice))
	assert.Equal(t, int64(1), m.created.Load())
}

func TestExecute_OneDay(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(t, store, passthroughTx{}, &countingMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{
		RenterID:    renterID,
		EquipmentID: drillID,
		Booking:     domain.OneDay(day(10)),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Days)
	assert.Equal(t, "52.50", domain.FormatMoney(resp.TotalPrice))
}

func TestExecute_OverlapRules(t *testing.T) {
	tests := []struct {
		name     string
		existing domain.BookingStatus
		second   domain.BookingRequest
		wantErr  error
	}{
		{name: "overlapping pending blocks", existing: domain.StatusPending, second: domain.MultiDay(day(11), day(14)), wantErr: ErrDatesUnavailable},
		{name: "touching approved blocks", existing: domain.StatusApproved, second: domain.OneDay(day(12)), wantErr: ErrDatesUnavailable},
		{name: "rejected does not block", existing: domain.StatusRejected, second: domain.MultiDay(day(10), day(12))},
		{name: "disjoint range succeeds", existing: domain.StatusApproved, second: domain.MultiDay(day(13), day(15))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			m := &countingMetrics{}
			uc := newUseCase(t, store, passthroughTx{}, m)

			first, err := uc.Execute(context.Background(), &Request{
				RenterID: renterID, EquipmentID: drillID, Booking: domain.MultiDay(day(10), day(12)),
			})
			require.NoError(t, err)

			store.mu.Lock()
			store.bookings[0].Status = tt.existing
			store.mu.Unlock()

			_, err = uc.Execute(context.Background(), &Request{
				RenterID: 3, EquipmentID: drillID, Booking: tt.second,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, store.count())
				assert.Equal(t, int64(1), m.conflicts.Load())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, store.count())
			assert.NotZero(t, first.ID)
		})
	}
}

func TestExecute_SelfBookingForbidden(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(t, store, passthroughTx{}, &countingMetrics{})

	_, err := uc.Execute(context.Background(), &Request{
		RenterID: ownerID, EquipmentID: drillID, Booking: domain.OneDay(day(10)),
	})

	assert.ErrorIs(t, err, ErrSelfBookingForbidden)
	assert.Equal(t, 0, store.count())
}

func TestExecute_EquipmentNotFound(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(t, store, passthroughTx{}, &countingMetrics{})

	_, err := uc.Execute(context.Background(), &Request{
		RenterID: renterID, EquipmentID: 404, Booking: domain.OneDay(day(10)),
	})

	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "missing renter", req: &Request{EquipmentID: drillID, Booking: domain.OneDay(day(10))}, wantErr: ErrInvalidInput},
		{name: "missing equipment", req: &Request{RenterID: renterID, Booking: domain.OneDay(day(10))}, wantErr: ErrInvalidInput},
		{name: "one day without date", req: &Request{RenterID: renterID, EquipmentID: drillID, Booking: domain.BookingRequest{Type: domain.BookingTypeOneDay}}, wantErr: ErrInvalidInput},
		{name: "reversed range", req: &Request{RenterID: renterID, EquipmentID: drillID, Booking: domain.MultiDay(day(12), day(10))}, wantErr: ErrInvalidInput},
		{name: "unknown type", req: &Request{RenterID: renterID, EquipmentID: drillID, Booking: domain.BookingRequest{Type: "hourly"}}, wantErr: ErrInvalidInput},
		{name: "in the past", req: &Request{RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))}, wantErr: ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			uc := newUseCase(t, store, passthroughTx{}, &countingMetrics{})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.count())
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	store := newMemStore()
	uc := newUseCase(t, store, passthroughTx{}, &countingMetrics{})

	_, err := uc.Execute(context.Background(), &Request{
		RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(day(1)),
	})

	assert.NoError(t, err)
}

func TestExecute_StorageConflictsMapToDatesUnavailable(t *testing.T) {
	t.Run("exclusion constraint", func(t *testing.T) {
		store := newMemStore()
		store.createErr = fmt.Errorf("%w: Create - equipment 5: boom", bookingRepo.ErrDatesConflict)
		m := &countingMetrics{}
		uc := newUseCase(t, store, passthroughTx{}, m)

		_, err := uc.Execute(context.Background(), &Request{
			RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(day(10)),
		})

		assert.ErrorIs(t, err, ErrDatesUnavailable)
		assert.Equal(t, int64(1), m.conflicts.Load())
	})

	t.Run("other storage errors stay internal", func(t *testing.T) {
		store := newMemStore()
		store.createErr = errors.New("disk full")
		uc := newUseCase(t, store, passthroughTx{}, &countingMetrics{})

		_, err := uc.Execute(context.Background(), &Request{
			RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(day(10)),
		})

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestExecute_SerializationFailureIsRetried(t *testing.T) {
	store := newMemStore()
	tx := &flakyTx{failures: 1}
	m := &countingMetrics{}
	uc := newUseCase(t, store, tx, m, WithSerializationRetries(3, 0))

	resp, err := uc.Execute(context.Background(), &Request{
		RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(day(10)),
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, int32(2), tx.calls.Load())
	assert.Equal(t, 1, store.count())
	assert.Equal(t, int64(1), m.created.Load())
	assert.Equal(t, int64(0), m.conflicts.Load())
}

func TestExecute_SerializationRetriesExhausted(t *testing.T) {
	store := newMemStore()
	tx := &flakyTx{failures: 100}
	m := &countingMetrics{}
	uc := newUseCase(t, store, tx, m, WithSerializationRetries(3, 0))

	_, err := uc.Execute(context.Background(), &Request{
		RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(day(10)),
	})

	assert.ErrorIs(t, err, ErrBusy)
	assert.NotErrorIs(t, err, ErrDatesUnavailable)
	assert.Equal(t, int32(3), tx.calls.Load())
	assert.Equal(t, 0, store.count())
	assert.Equal(t, int64(0), m.conflicts.Load())
}

func TestExecute_ConcurrentOverlappingRequests(t *testing.T) {
	store := newMemStore()
	store.readDelay = 2 * time.Millisecond
	m := &countingMetrics{}
	uc := newUseCase(t, store, passthroughTx{}, m)

	const workers = 10

	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		successes atomic.Int64
		conflicts atomic.Int64
		others    atomic.Int64
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(renter int64) {
			defer wg.Done()
			<-start

			_, err := uc.Execute(context.Background(), &Request{
				RenterID:    renter,
				EquipmentID: drillID,
				Booking:     domain.MultiDay(day(10), day(12+int(renter)%3)),
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrDatesUnavailable):
				conflicts.Add(1)
			default:
				others.Add(1)
			}
		}(int64(100 + i))
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), successes.Load())
	assert.Equal(t, int64(workers-1), conflicts.Load())
	assert.Zero(t, others.Load())
	assert.Equal(t, 1, store.count())
	assert.Equal(t, int64(1), m.created.Load())
	assert.Equal(t, int64(workers-1), m.conflicts.Load())
}

func TestExecute_LockTimeout(t *testing.T) {
	store := newMemStore()
	locker := keylock.New[int64]()
	calc, err := pricing.NewCalculator(decimal.RequireFromString("0.05"))
	require.NoError(t, err)

	uc := NewUseCase(store, store, availability.NewChecker(store), calc, passthroughTx{}, locker,
		&countingMetrics{}, nopLogger{}, WithLockTimeout(10*time.Millisecond), WithPastDatesAllowed())

	unlock, err := locker.LockContext(context.Background(), drillID)
	require.NoError(t, err)
	defer unlock()

	_, err = uc.Execute(context.Background(), &Request{
		RenterID: renterID, EquipmentID: drillID, Booking: domain.OneDay(day(10)),
	})

	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 0, store.count())
}
