package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// validateRequest валидирует входные данные и разрешает запрос в период
func validateRequest(req *Request) (domain.DateRange, error) {
	if req.RenterID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: renterID must be positive", ErrInvalidInput)
	}

	if req.EquipmentID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: equipmentID must be positive", ErrInvalidInput)
	}

	period, err := req.Booking.Resolve()
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return period, nil
}

// validateNotInPast проверяет, что аренда начинается не раньше текущего дня (UTC)
func validateNotInPast(period domain.DateRange, now time.Time) error {
	if period.Start.Before(domain.StartOfDay(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, period.Start.Format(domain.DateFormat))
	}
	return nil
}
