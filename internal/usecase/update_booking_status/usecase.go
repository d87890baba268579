package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/booking"
)

// UseCase use case для изменения статуса бронирования владельцем оборудования
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute меняет статус бронирования.
// Повторная установка того же статуса - успех без записи.
// Из Completed и Rejected переходов нет. Другие бронирования и оборудование не затрагиваются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, status=%s, user=%d", req.BookingID, req.Status, req.UserID)

	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Бронирование вместе с владельцем оборудования, строка блокируется
		booking, err := uc.bookingRepo.GetWithOwner(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.OwnerID != req.UserID {
			uc.logger.Warn("UpdateBookingStatus: user=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.Status.CanTransitionTo(target) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d %s -> %s rejected", req.BookingID, booking.Status, target)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, target)
		}

		resp = &Response{
			BookingID:      booking.ID,
			PreviousStatus: string(booking.Status),
			Status:         string(target),
		}

		if booking.Status == target {
			return nil
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, target); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		resp.Changed = true
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrInternal):
			return nil, err
		}
		uc.logger.Error("UpdateBookingStatus: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	if resp.Changed {
		uc.metrics.IncStatusUpdate(resp.Status)
		uc.logger.Info("UpdateBookingStatus: booking id=%d %s -> %s", resp.BookingID, resp.PreviousStatus, resp.Status)
	}

	return resp, nil
}
