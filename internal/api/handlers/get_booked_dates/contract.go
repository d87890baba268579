package get_booked_dates

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetBookedDates(ctx context.Context, equipmentID int64) (*models.BookedDatesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
