package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// Request модели

// EquipmentRequest запрос на создание или изменение оборудования.
// Цена принимается и числом, и строкой.
type EquipmentRequest struct {
	CategoryID  int64           `json:"categoryId" validate:"required,gt=0"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Location    string          `json:"location" validate:"max=500"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,max=500"`
	PricePerDay decimal.Decimal `json:"pricePerDay" validate:"-"`
	IsAvailable *bool           `json:"isAvailable,omitempty"`
}

// SearchRequest параметры поиска по каталогу
type SearchRequest struct {
	Query      string `json:"q"`
	CategoryID *int64 `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Sort       string `json:"sort" validate:"omitempty,oneof=newest price_asc price_desc name"`
}

// Response модели

// EquipmentResponse ответ с данными оборудования
type EquipmentResponse struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PricePerDay string    `json:"pricePerDay"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EquipmentListResponse ответ со списком оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// FromDomainEquipment конвертирует domain модель в DTO
func FromDomainEquipment(eq *domain.Equipment) *EquipmentResponse {
	if eq == nil {
		return nil
	}

	return &EquipmentResponse{
		ID:          eq.ID,
		OwnerID:     eq.OwnerID,
		CategoryID:  eq.CategoryID,
		Name:        eq.Name,
		Description: eq.Description,
		Location:    eq.Location,
		ImageURL:    eq.ImageURL,
		PricePerDay: domain.FormatMoney(eq.PricePerDay),
		IsAvailable: eq.IsAvailable,
		CreatedAt:   eq.CreatedAt,
		UpdatedAt:   eq.UpdatedAt,
	}
}

// FromDomainEquipmentList конвертирует список domain моделей в DTO
func FromDomainEquipmentList(list []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{
		Equipment: make([]EquipmentResponse, 0, len(list)),
	}

	for _, eq := range list {
		if r := FromDomainEquipment(eq); r != nil {
			resp.Equipment = append(resp.Equipment, *r)
		}
	}

	return resp
}
