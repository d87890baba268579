package update_booking_status

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithOwner(ctx context.Context, id int64) (*domain.BookingWithOwner, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчик решений владельцев
type Metrics interface {
	IncStatusUpdate(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
