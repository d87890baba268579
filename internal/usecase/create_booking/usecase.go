package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/equipment"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	equipmentRepo   EquipmentRepository
	checker         AvailabilityChecker
	calculator      PriceCalculator
	txManager       TransactionManager
	locker          EquipmentLocker
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
	lockTimeout     time.Duration
	rejectPastDates bool
	txAttempts      int
	retryBackoff    time.Duration
}

const (
	defaultTxAttempts   = 3
	defaultRetryBackoff = 10 * time.Millisecond
)

// Option настраивает use case
type Option func(uc *UseCase)

// WithLockTimeout ограничивает ожидание блокировки оборудования
func WithLockTimeout(d time.Duration) Option {
	return func(uc *UseCase) { uc.lockTimeout = d }
}

// WithPastDatesAllowed отключает проверку даты начала относительно текущего дня
func WithPastDatesAllowed() Option {
	return func(uc *UseCase) { uc.rejectPastDates = false }
}

// WithSerializationRetries задаёт число попыток транзакции при конфликте сериализации (40001, 40P01)
func WithSerializationRetries(attempts int, backoff time.Duration) Option {
	return func(uc *UseCase) {
		if attempts > 0 {
			uc.txAttempts = attempts
		}
		if backoff >= 0 {
			uc.retryBackoff = backoff
		}
	}
}

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(uc *UseCase) { uc.timeProvider = tp }
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	equipmentRepo EquipmentRepository,
	checker AvailabilityChecker,
	calculator PriceCalculator,
	txManager TransactionManager,
	locker EquipmentLocker,
	metrics Metrics,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo:     bookingRepo,
		equipmentRepo:   equipmentRepo,
		checker:         checker,
		calculator:      calculator,
		txManager:       txManager,
		locker:          locker,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		rejectPastDates: true,
		txAttempts:      defaultTxAttempts,
		retryBackoff:    defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка идут под блокировкой оборудования в процессе
// и в сериализуемой транзакции со строкой оборудования, заблокированной FOR UPDATE.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: renter=%d, equipment=%d, type=%s", req.RenterID, req.EquipmentID, req.Booking.Type)

	// 1. Валидация и разрешение периода
	period, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if uc.rejectPastDates {
		if err := validateNotInPast(period, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
	}

	// 2. Блокировка оборудования внутри процесса
	lockCtx := ctx
	if uc.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, uc.lockTimeout)
		defer cancel()
	}

	unlock, err := uc.locker.LockContext(lockCtx, req.EquipmentID)
	if err != nil {
		uc.logger.Warn("CreateBooking: equipment=%d lock wait aborted: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: %v", ErrBusy, err)
	}
	defer unlock()

	// 3. Проверка и вставка в сериализуемой транзакции.
	// Конфликт сериализации не означает пересечения дат: транзакция повторяется целиком.
	var result *domain.Booking
	for attempt := 1; ; attempt++ {
		result, err = uc.createInTx(ctx, req, period)
		if err == nil || !txmanager.IsSerializationFailure(err) {
			break
		}
		if attempt >= uc.txAttempts {
			uc.logger.Warn("CreateBooking: equipment=%d serialization failure after %d attempts: %v", req.EquipmentID, attempt, err)
			return nil, fmt.Errorf("%w: serialization failure after %d attempts: %v", ErrBusy, attempt, err)
		}
		uc.logger.Warn("CreateBooking: equipment=%d serialization failure, retry %d: %v", req.EquipmentID, attempt, err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrBusy, ctx.Err())
		case <-time.After(time.Duration(attempt) * uc.retryBackoff):
		}
	}

	if err != nil {
		if errors.Is(err, ErrDatesUnavailable) {
			uc.metrics.IncBookingConflict()
			return nil, ErrDatesUnavailable
		}
		if errors.Is(err, ErrEquipmentNotFound) || errors.Is(err, ErrSelfBookingForbidden) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: created booking id=%d, equipment=%d, days=%d, total=%s",
		result.ID, result.EquipmentID, result.Days(), domain.FormatMoney(result.TotalPrice))

	return responseFromDomain(result), nil
}

// createInTx одна попытка проверки и вставки в сериализуемой транзакции
func (uc *UseCase) createInTx(ctx context.Context, req *Request, period domain.DateRange) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Оборудование с блокировкой строки
		equipment, err := uc.equipmentRepo.GetByID(txCtx, req.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("CreateBooking: equipment id=%d not found", req.EquipmentID)
				return ErrEquipmentNotFound
			}
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to get equipment id=%d: %v", req.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
		}

		// 3.2. Владелец не может арендовать своё оборудование
		if equipment.IsOwnedBy(req.RenterID) {
			uc.logger.Warn("CreateBooking: renter=%d owns equipment id=%d", req.RenterID, req.EquipmentID)
			return ErrSelfBookingForbidden
		}

		// 3.3. Проверка доступности в той же транзакции
		available, err := uc.checker.IsAvailable(txCtx, req.EquipmentID, period.Start, period.End)
		if err != nil {
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check: %v", ErrInternal, err)
		}
		if !available {
			uc.logger.Warn("CreateBooking: equipment=%d is booked within %s..%s", req.EquipmentID,
				period.Start.Format(domain.DateFormat), period.End.Format(domain.DateFormat))
			return ErrDatesUnavailable
		}

		// 3.4. Расчёт стоимости по текущей цене
		breakdown, err := uc.calculator.ComputeBreakdown(equipment.PricePerDay, period.Start, period.End)
		if err != nil {
			uc.logger.Error("CreateBooking: price calculation failed for equipment id=%d: %v", req.EquipmentID, err)
			return fmt.Errorf("%w: price calculation: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			EquipmentID: req.EquipmentID,
			RenterID:    req.RenterID,
			StartDate:   period.Start,
			EndDate:     period.End,
			Status:      domain.StatusPending,
		}
		breakdown.ApplyTo(booking)

		// 3.5. Сохраняем бронирование. 23P01 - реальное пересечение дат, а не сбой сериализации.
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDatesConflict) {
				return ErrDatesUnavailable
			}
			if txmanager.IsSerializationFailure(err) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
