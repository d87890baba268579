package equipment

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error)
	Delete(ctx context.Context, id, ownerID int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Equipment, error)
	Search(ctx context.Context, filter domain.EquipmentSearchFilter) ([]*domain.Equipment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
