package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default platform fee rate, applied on top of the equipment cost
const DefaultPlatformFeeRate = "0.05"

// Money precision for all persisted amounts
const MoneyScale = 2

// Listing field limits
const (
	MaxEquipmentNameLength        = 200
	MaxEquipmentDescriptionLength = 1000
	MaxEquipmentLocationLength    = 500
	MaxEquipmentImageURLLength    = 500
	MaxStatusLength               = 20
)
