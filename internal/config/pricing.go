package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseFeeRate разбирает ставку комиссии, допустимый диапазон [0, 1)
func ParseFeeRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: pricing.platform_fee_rate %q is not a number", ErrInvalidConfig, raw)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: pricing.platform_fee_rate must be in [0, 1), got %s", ErrInvalidConfig, raw)
	}
	return rate, nil
}

// FeeRate возвращает проверенную ставку комиссии
func (p PricingConfig) FeeRate() decimal.Decimal {
	rate, err := ParseFeeRate(p.PlatformFeeRate)
	if err != nil {
		return decimal.RequireFromString(defaultPlatformFee)
	}
	return rate
}
