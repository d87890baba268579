package update_booking_status

import (
	"fmt"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// validateRequest валидирует запрос и возвращает целевой статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	status, ok := domain.ParseBookingStatus(req.Status)
	if !ok || !status.IsDecision() {
		return "", fmt.Errorf("%w: status must be one of Approved, Rejected, Completed, got %q", ErrInvalidInput, req.Status)
	}

	return status, nil
}
