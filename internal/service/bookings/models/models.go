package models

import (
	"time"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований арендатора или владельца
type ListBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, bool) {
	if r.Status == nil || *r.Status == "" {
		return domain.BookingsFilter{}, true
	}
	status, ok := domain.ParseBookingStatus(*r.Status)
	if !ok {
		return domain.BookingsFilter{}, false
	}
	return domain.BookingsFilter{Status: &status}, true
}

// Response модели

// EquipmentSummary краткие данные оборудования в бронировании
type EquipmentSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	OwnerID     int64  `json:"ownerId"`
	PricePerDay string `json:"pricePerDay"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// RenterSummary краткие данные арендатора
type RenterSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	StartDate string `json:"startDate"` // "2025-01-10"
	EndDate   string `json:"endDate"`   // "2025-01-12", последний день включительно
	Days      int    `json:"days"`
	Status    string `json:"status"`

	EquipmentCost         string `json:"equipmentCost"`
	PlatformCost          string `json:"platformCost"`
	OwnerReceivableAmount string `json:"ownerReceivableAmount"`
	TotalPrice            string `json:"totalPrice"`

	Equipment EquipmentSummary `json:"equipment"`
	Renter    RenterSummary    `json:"renter"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookedRangeResponse занятый период в календаре оборудования
type BookedRangeResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// BookedDatesResponse ответ со списком занятых периодов
type BookedDatesResponse struct {
	EquipmentID int64                 `json:"equipmentId"`
	Ranges      []BookedRangeResponse `json:"ranges"`
}

// Методы конвертации

// FromDomainBookingDetails конвертирует domain модель в DTO
func FromDomainBookingDetails(d *domain.BookingDetails) *BookingResponse {
	if d == nil {
		return nil
	}

	return &BookingResponse{
		ID:                    d.ID,
		StartDate:             d.StartDate.UTC().Format(domain.DateFormat),
		EndDate:               d.EndDate.UTC().Format(domain.DateFormat),
		Days:                  d.Days(),
		Status:                string(d.Status),
		EquipmentCost:         domain.FormatMoney(d.EquipmentCost),
		PlatformCost:          domain.FormatMoney(d.PlatformCost),
		OwnerReceivableAmount: domain.FormatMoney(d.OwnerReceivableAmount),
		TotalPrice:            domain.FormatMoney(d.TotalPrice),
		Equipment: EquipmentSummary{
			ID:          d.EquipmentID,
			Name:        d.EquipmentName,
			OwnerID:     d.EquipmentOwnerID,
			PricePerDay: domain.FormatMoney(d.EquipmentPricePerDay),
			ImageURL:    d.EquipmentImageURL,
		},
		Renter: RenterSummary{
			ID:        d.RenterID,
			FirstName: d.RenterFirstName,
			LastName:  d.RenterLastName,
			Email:     d.RenterEmail,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(list []*domain.BookingDetails) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(list)),
	}

	for _, d := range list {
		if b := FromDomainBookingDetails(d); b != nil {
			resp.Bookings = append(resp.Bookings, *b)
		}
	}

	return resp
}

// FromDomainBookedRanges конвертирует занятые периоды в DTO
func FromDomainBookedRanges(equipmentID int64, ranges []domain.BookedRange) *BookedDatesResponse {
	resp := &BookedDatesResponse{
		EquipmentID: equipmentID,
		Ranges:      make([]BookedRangeResponse, 0, len(ranges)),
	}

	for _, r := range ranges {
		resp.Ranges = append(resp.Ranges, BookedRangeResponse{
			StartDate: r.Start.UTC().Format(domain.DateFormat),
			EndDate:   r.End.UTC().Format(domain.DateFormat),
		})
	}

	return resp
}
