package domain

import (
	"errors"
	"time"
)

var (
	ErrUnknownBookingType = errors.New("domain: unknown booking type")
	ErrDateRequired       = errors.New("domain: date is required for a one day booking")
	ErrStartDateRequired  = errors.New("domain: start date is required for a multi day booking")
	ErrEndDateRequired    = errors.New("domain: end date is required for a multi day booking")
)

// BookingType selects which dates of a BookingRequest are used
type BookingType string

const (
	BookingTypeOneDay   BookingType = "one_day"
	BookingTypeMultiDay BookingType = "multi_day"
)

// BookingRequest is either a single day (Date) or a range (StartDate, EndDate).
// Resolve is the only place that looks at Type.
type BookingRequest struct {
	Type      BookingType
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// OneDay builds a single day request
func OneDay(date time.Time) BookingRequest {
	return BookingRequest{Type: BookingTypeOneDay, Date: &date}
}

// MultiDay builds a range request
func MultiDay(start, end time.Time) BookingRequest {
	return BookingRequest{Type: BookingTypeMultiDay, StartDate: &start, EndDate: &end}
}

// Resolve validates the selected branch and returns the canonical range
func (r BookingRequest) Resolve() (DateRange, error) {
	switch r.Type {
	case BookingTypeOneDay:
		if r.Date == nil || r.Date.IsZero() {
			return DateRange{}, ErrDateRequired
		}
		return SingleDay(*r.Date), nil
	case BookingTypeMultiDay:
		if r.StartDate == nil || r.StartDate.IsZero() {
			return DateRange{}, ErrStartDateRequired
		}
		if r.EndDate == nil || r.EndDate.IsZero() {
			return DateRange{}, ErrEndDateRequired
		}
		return NewDateRange(*r.StartDate, *r.EndDate)
	default:
		return DateRange{}, ErrUnknownBookingType
	}
}
