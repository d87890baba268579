package models

import (
	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// PriceQuoteResponse ответ с расчётом стоимости аренды.
// Денежные суммы передаются строками с двумя знаками после запятой.
type PriceQuoteResponse struct {
	EquipmentID     int64  `json:"equipmentId"`
	StartDate       string `json:"startDate"` // "2025-01-10"
	EndDate         string `json:"endDate"`
	Days            int    `json:"days"`
	DailyRate       string `json:"dailyRate"`
	EquipmentCost   string `json:"equipmentCost"`
	PlatformCost    string `json:"platformCost"`
	OwnerReceivable string `json:"ownerReceivable"`
	TotalPrice      string `json:"totalPrice"`
}

// FromDomainBreakdown конвертирует расчёт в DTO
func FromDomainBreakdown(equipmentID int64, period domain.DateRange, b domain.PriceBreakdown) *PriceQuoteResponse {
	return &PriceQuoteResponse{
		EquipmentID:     equipmentID,
		StartDate:       period.Start.Format(domain.DateFormat),
		EndDate:         period.End.Format(domain.DateFormat),
		Days:            b.Days,
		DailyRate:       domain.FormatMoney(b.DailyRate),
		EquipmentCost:   domain.FormatMoney(b.EquipmentCost),
		PlatformCost:    domain.FormatMoney(b.PlatformCost),
		OwnerReceivable: domain.FormatMoney(b.OwnerReceivable),
		TotalPrice:      domain.FormatMoney(b.TotalPrice),
	}
}
