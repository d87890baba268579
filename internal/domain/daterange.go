package domain

import (
	"errors"
	"time"
)

var ErrInvalidDateRange = errors.New("domain: end date is before start date")

const (
	day        = 24 * time.Hour
	secondsDay = int64(day / time.Second)
)

// DateRange is a closed period of whole UTC calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns 00:00 UTC of the calendar day of t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last instant of the UTC calendar day of t.
// Microsecond precision matches timestamptz.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(day - time.Microsecond)
}

// NewDateRange spans the whole calendar days from start to end
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: StartOfDay(start), End: EndOfDay(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// SingleDay spans one calendar day
func SingleDay(date time.Time) DateRange {
	return DateRange{Start: StartOfDay(date), End: EndOfDay(date)}
}

// Days returns the inclusive number of calendar days covered.
// Counted on Unix seconds, time.Duration saturates after ~292 years.
func (r DateRange) Days() int {
	return int((StartOfDay(r.End).Unix()-StartOfDay(r.Start).Unix())/secondsDay) + 1
}

// Overlaps is a closed-interval test, touching endpoints overlap
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}
