package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusApproved  BookingStatus = "Approved"
	StatusRejected  BookingStatus = "Rejected"
	StatusCompleted BookingStatus = "Completed"
)

// ParseBookingStatus matches s case-insensitively against the known statuses
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, st := range AllStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsDecision reports whether s may be set by the equipment owner
func (s BookingStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCompleted
}

// IsTerminal reports whether no further transitions are allowed out of s
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// BlocksDates reports whether a booking in this status occupies its date range
func (s BookingStatus) BlocksDates() bool {
	return s != StatusRejected
}

// CanTransitionTo reports whether an owner may move a booking from s to target.
// Setting the current status again is always allowed and is a no-op.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	if !target.IsDecision() {
		return false
	}
	if s == target {
		return true
	}
	return !s.IsTerminal()
}

// Booking represents a renter's reservation of equipment for a date range
type Booking struct {
	ID          int64
	EquipmentID int64
	RenterID    int64
	StartDate   time.Time // 00:00 UTC of the first day
	EndDate     time.Time // last instant of the last day
	Status      BookingStatus

	// Price breakdown fixed at creation time
	EquipmentCost         decimal.Decimal
	PlatformCost          decimal.Decimal
	OwnerReceivableAmount decimal.Decimal
	TotalPrice            decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its dates
func (b *Booking) IsActive() bool {
	return b.Status.BlocksDates()
}

// Range returns the booked period
func (b *Booking) Range() DateRange {
	return DateRange{Start: b.StartDate, End: b.EndDate}
}

// Days returns the number of billed calendar days
func (b *Booking) Days() int {
	return b.Range().Days()
}

// BookingDetails is a booking joined with equipment and renter summaries
type BookingDetails struct {
	Booking

	EquipmentName        string
	EquipmentOwnerID     int64
	EquipmentPricePerDay decimal.Decimal
	EquipmentImageURL    string

	RenterFirstName string
	RenterLastName  string
	RenterEmail     string
}

// CanBeViewedBy returns true for the renter and the equipment owner
func (d *BookingDetails) CanBeViewedBy(userID int64) bool {
	return userID == d.RenterID || userID == d.EquipmentOwnerID
}

// BookingWithOwner is a booking together with the owner of its equipment
type BookingWithOwner struct {
	Booking
	OwnerID int64
}

// BookedRange is a blocked period in the equipment calendar
type BookedRange struct {
	Start time.Time
	End   time.Time
}

// BookingsFilter narrows renter and owner listings
type BookingsFilter struct {
	Status *BookingStatus // nil - any status
}

// AllStatuses lists every booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCompleted,
}
