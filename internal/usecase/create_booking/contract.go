package create_booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// EquipmentRepository интерфейс репозитория оборудования.
// Внутри транзакции GetByID блокирует строку оборудования.
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// AvailabilityChecker проверка пересечения периода с существующими бронированиями
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, equipmentID int64, startDate, endDate time.Time) (bool, error)
}

// PriceCalculator расчёт стоимости аренды
type PriceCalculator interface {
	ComputeBreakdown(dailyRate decimal.Decimal, startDate, endDate time.Time) (domain.PriceBreakdown, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EquipmentLocker блокировка оборудования внутри процесса
type EquipmentLocker interface {
	LockContext(ctx context.Context, equipmentID int64) (unlock func(), err error)
}

// Metrics счётчики бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
