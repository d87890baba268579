package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	RenterID    int64                 // ID арендатора, из контекста запроса
	EquipmentID int64                 // ID оборудования
	Booking     domain.BookingRequest // Один день или диапазон дат
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	EquipmentID int64
	RenterID    int64
	StartDate   time.Time // 00:00 UTC первого дня
	EndDate     time.Time // конец последнего дня
	Days        int
	Status      string

	EquipmentCost         decimal.Decimal
	PlatformCost          decimal.Decimal
	OwnerReceivableAmount decimal.Decimal
	TotalPrice            decimal.Decimal

	CreatedAt time.Time
}

func responseFromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:                    b.ID,
		EquipmentID:           b.EquipmentID,
		RenterID:              b.RenterID,
		StartDate:             b.StartDate,
		EndDate:               b.EndDate,
		Days:                  b.Days(),
		Status:                string(b.Status),
		EquipmentCost:         b.EquipmentCost,
		PlatformCost:          b.PlatformCost,
		OwnerReceivableAmount: b.OwnerReceivableAmount,
		TotalPrice:            b.TotalPrice,
		CreatedAt:             b.CreatedAt,
	}
}
