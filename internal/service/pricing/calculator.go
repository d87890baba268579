package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

var one = decimal.NewFromInt(1)

// Calculator считает стоимость аренды, не обращаясь к хранилищу
type Calculator struct {
	feeRate decimal.Decimal
}

// NewCalculator создает калькулятор с заданной ставкой комиссии платформы
func NewCalculator(feeRate decimal.Decimal) (*Calculator, error) {
	if feeRate.IsNegative() || feeRate.GreaterThanOrEqual(one) {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidFeeRate, feeRate)
	}
	return &Calculator{feeRate: feeRate}, nil
}

// FeeRate возвращает ставку комиссии
func (c *Calculator) FeeRate() decimal.Decimal {
	return c.feeRate
}

// ComputeBreakdown считает стоимость аренды за весь период.
// Количество дней = разница календарных дней + 1, однодневная аренда до 23:59:59 считается одним днём.
func (c *Calculator) ComputeBreakdown(dailyRate decimal.Decimal, startDate, endDate time.Time) (domain.PriceBreakdown, error) {
	if !dailyRate.IsPositive() {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: got %s", ErrInvalidDailyRate, dailyRate)
	}

	period, err := domain.NewDateRange(startDate, endDate)
	if err != nil {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}

	return c.breakdown(dailyRate, period.Days()), nil
}

func (c *Calculator) breakdown(dailyRate decimal.Decimal, days int) domain.PriceBreakdown {
	equipmentCost := domain.RoundMoney(dailyRate.Mul(decimal.NewFromInt(int64(days))))
	platformCost := domain.RoundMoney(equipmentCost.Mul(c.feeRate))

	return domain.PriceBreakdown{
		Days:            days,
		DailyRate:       dailyRate,
		EquipmentCost:   equipmentCost,
		PlatformCost:    platformCost,
		OwnerReceivable: equipmentCost,
		TotalPrice:      equipmentCost.Add(platformCost),
	}
}
