package bookings

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.BookingDetails, error)
	ListByRenter(ctx context.Context, renterID int64, filter domain.BookingsFilter) ([]*domain.BookingDetails, error)
	ListByOwner(ctx context.Context, ownerID int64, filter domain.BookingsFilter) ([]*domain.BookingDetails, error)
	ListActiveByEquipment(ctx context.Context, equipmentID int64, period *domain.DateRange) ([]*domain.Booking, error)
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
