package domain

import "github.com/shopspring/decimal"

// PriceBreakdown is the itemized cost of renting equipment for a period.
// The platform fee is added on top and borne by the renter.
type PriceBreakdown struct {
	Days            int
	DailyRate       decimal.Decimal
	EquipmentCost   decimal.Decimal
	PlatformCost    decimal.Decimal
	OwnerReceivable decimal.Decimal
	TotalPrice      decimal.Decimal
}

// ApplyTo copies the amounts onto a booking
func (p PriceBreakdown) ApplyTo(b *Booking) {
	b.EquipmentCost = p.EquipmentCost
	b.PlatformCost = p.PlatformCost
	b.OwnerReceivableAmount = p.OwnerReceivable
	b.TotalPrice = p.TotalPrice
}
