package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	equipmentRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/pricing/models"
)

// Service отдаёт расчёт стоимости по идентификатору оборудования
type Service struct {
	equipmentRepo EquipmentRepository
	calculator    *Calculator
	logger        Logger
}

// NewService создает новый экземпляр сервиса расчёта стоимости
func NewService(equipmentRepo EquipmentRepository, calculator *Calculator, logger Logger) *Service {
	return &Service{
		equipmentRepo: equipmentRepo,
		calculator:    calculator,
		logger:        logger,
	}
}

// CalculateTotalPrice возвращает итоговую стоимость аренды вместе с комиссией
func (s *Service) CalculateTotalPrice(ctx context.Context, equipmentID int64, start, end time.Time) (decimal.Decimal, error) {
	breakdown, err := s.CalculatePriceBreakdown(ctx, equipmentID, start, end)
	if err != nil {
		return decimal.Zero, err
	}
	return breakdown.TotalPrice, nil
}

// CalculatePriceBreakdown возвращает детализацию стоимости по текущей цене оборудования.
// Отсутствующее оборудование - ошибка ErrEquipmentNotFound, а не нулевой расчёт.
func (s *Service) CalculatePriceBreakdown(ctx context.Context, equipmentID int64, start, end time.Time) (domain.PriceBreakdown, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("CalculatePriceBreakdown: equipment id=%d not found", equipmentID)
			return domain.PriceBreakdown{}, ErrEquipmentNotFound
		}
		s.logger.Error("CalculatePriceBreakdown: repository error for equipment id=%d: %v", equipmentID, err)
		return domain.PriceBreakdown{}, fmt.Errorf("%w: CalculatePriceBreakdown - repository error: %v", ErrInternal, err)
	}

	breakdown, err := s.calculator.ComputeBreakdown(equipment.PricePerDay, start, end)
	if err != nil {
		if errors.Is(err, ErrInvalidDateRange) {
			return domain.PriceBreakdown{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("CalculatePriceBreakdown: equipment id=%d: %v", equipmentID, err)
		return domain.PriceBreakdown{}, fmt.Errorf("%w: CalculatePriceBreakdown - %v", ErrInternal, err)
	}

	return breakdown, nil
}

// Quote разрешает запрос на бронирование в период и считает стоимость
func (s *Service) Quote(ctx context.Context, equipmentID int64, req domain.BookingRequest) (*models.PriceQuoteResponse, error) {
	if equipmentID <= 0 {
		return nil, fmt.Errorf("%w: equipment id must be positive", ErrInvalidInput)
	}

	period, err := req.Resolve()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	breakdown, err := s.CalculatePriceBreakdown(ctx, equipmentID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Quote: equipment=%d days=%d total=%s", equipmentID, breakdown.Days, domain.FormatMoney(breakdown.TotalPrice))
	return models.FromDomainBreakdown(equipmentID, period, breakdown), nil
}
