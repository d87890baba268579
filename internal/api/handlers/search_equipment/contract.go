package search_equipment

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment/models"
)

type EquipmentService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.EquipmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
