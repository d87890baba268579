package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Equipment represents a rentable item listed by an owner
type Equipment struct {
	ID          int64
	OwnerID     int64
	CategoryID  int64
	Name        string
	Description string
	Location    string
	ImageURL    string
	PricePerDay decimal.Decimal
	// IsAvailable only controls whether the item is listed in search
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy returns true if userID owns the equipment
func (e *Equipment) IsOwnedBy(userID int64) bool {
	return e.OwnerID == userID
}

// EquipmentSort is the ordering of search results
type EquipmentSort string

const (
	SortNewest    EquipmentSort = "newest"
	SortPriceAsc  EquipmentSort = "price_asc"
	SortPriceDesc EquipmentSort = "price_desc"
	SortName      EquipmentSort = "name"
)

// ParseEquipmentSort falls back to SortNewest for empty input
func ParseEquipmentSort(s string) (EquipmentSort, bool) {
	switch EquipmentSort(s) {
	case "":
		return SortNewest, true
	case SortNewest, SortPriceAsc, SortPriceDesc, SortName:
		return EquipmentSort(s), true
	default:
		return "", false
	}
}

// EquipmentSearchFilter describes a public catalogue search
type EquipmentSearchFilter struct {
	Query      string // matched against name and description
	CategoryID *int64
	Sort       EquipmentSort
}
