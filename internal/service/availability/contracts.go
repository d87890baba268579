package availability

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveByEquipment(ctx context.Context, equipmentID int64, period *domain.DateRange) ([]*domain.Booking, error)
}
