package pricing

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

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
