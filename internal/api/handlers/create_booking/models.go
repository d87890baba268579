package create_booking

import (
	"time"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/domain"
	createBooking "github.com/m04kA/EquipShare-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Для one_day заполняется date, для multi_day startDate и endDate.
type CreateBookingRequest struct {
	EquipmentID int64  `json:"equipmentId"`
	Type        string `json:"type"`      // "one_day" | "multi_day"
	Date        string `json:"date"`      // "2025-01-10"
	StartDate   string `json:"startDate"` // "2025-01-10"
	EndDate     string `json:"endDate"`   // "2025-01-12"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                    int64  `json:"id"`
	EquipmentID           int64  `json:"equipmentId"`
	RenterID              int64  `json:"renterId"`
	StartDate             string `json:"startDate"`
	EndDate               string `json:"endDate"`
	Days                  int    `json:"days"`
	Status                string `json:"status"`
	EquipmentCost         string `json:"equipmentCost"`
	PlatformCost          string `json:"platformCost"`
	OwnerReceivableAmount string `json:"ownerReceivableAmount"`
	TotalPrice            string `json:"totalPrice"`
	CreatedAt             string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(renterID int64) (*createBooking.Request, error) {
	booking, err := handlers.ParseBookingRequest(r.Type, r.Date, r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RenterID:    renterID,
		EquipmentID: r.EquipmentID,
		Booking:     booking,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                    resp.ID,
		EquipmentID:           resp.EquipmentID,
		RenterID:              resp.RenterID,
		StartDate:             resp.StartDate.UTC().Format(domain.DateFormat),
		EndDate:               resp.EndDate.UTC().Format(domain.DateFormat),
		Days:                  resp.Days,
		Status:                resp.Status,
		EquipmentCost:         domain.FormatMoney(resp.EquipmentCost),
		PlatformCost:          domain.FormatMoney(resp.PlatformCost),
		OwnerReceivableAmount: domain.FormatMoney(resp.OwnerReceivableAmount),
		TotalPrice:            domain.FormatMoney(resp.TotalPrice),
		CreatedAt:             resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
