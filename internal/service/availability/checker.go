package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

// Checker проверяет, свободно ли оборудование на период.
// Сам по себе ничего не блокирует: атомарность проверки и вставки обеспечивает вызывающий код,
// запуская IsAvailable внутри своей транзакции (исполнитель берётся из контекста).
type Checker struct {
	bookingRepo BookingRepository
}

// NewChecker создает новый экземпляр проверки доступности
func NewChecker(bookingRepo BookingRepository) *Checker {
	return &Checker{bookingRepo: bookingRepo}
}

// IsAvailable возвращает true, если ни одно неотклонённое бронирование не пересекается с периодом
func (c *Checker) IsAvailable(ctx context.Context, equipmentID int64, startDate, endDate time.Time) (bool, error) {
	period, err := domain.NewDateRange(startDate, endDate)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	bookings, err := c.bookingRepo.ListActiveByEquipment(ctx, equipmentID, &period)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return false, err
		}
		return false, fmt.Errorf("%w: IsAvailable - equipment %d: %v", ErrInternal, equipmentID, err)
	}

	return !Conflicts(period, bookings), nil
}

// Conflicts сообщает, пересекается ли период (включая границы) хотя бы с одним неотклонённым бронированием
func Conflicts(period domain.DateRange, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.Status.BlocksDates() && period.Overlaps(b.Range()) {
			return true
		}
	}
	return false
}
