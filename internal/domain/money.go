package domain

import "github.com/shopspring/decimal"

// MaxPricePerDay bounds a listing's daily rate. A booking of any length
// at this rate still fits the NUMERIC(18,2) money columns.
var MaxPricePerDay = decimal.NewFromInt(1_000_000)

// RoundMoney rounds an amount to cents, halves away from zero
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// FormatMoney renders an amount with exactly two fraction digits
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}
