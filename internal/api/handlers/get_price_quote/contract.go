package get_price_quote

import (
	"context"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	"github.com/m04kA/EquipShare-BookingService/internal/service/pricing/models"
)

type PricingService interface {
	Quote(ctx context.Context, equipmentID int64, req domain.BookingRequest) (*models.PriceQuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
