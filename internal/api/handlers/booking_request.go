package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/EquipShare-BookingService/internal/domain"
)

// ParseBookingRequest собирает domain.BookingRequest из строковых полей запроса.
// Пустые даты остаются nil, их обязательность проверяет Resolve.
func ParseBookingRequest(bookingType, date, startDate, endDate string) (domain.BookingRequest, error) {
	req := domain.BookingRequest{Type: domain.BookingType(bookingType)}

	var err error
	if req.Date, err = parseOptionalDate("date", date); err != nil {
		return domain.BookingRequest{}, err
	}
	if req.StartDate, err = parseOptionalDate("startDate", startDate); err != nil {
		return domain.BookingRequest{}, err
	}
	if req.EndDate, err = parseOptionalDate("endDate", endDate); err != nil {
		return domain.BookingRequest{}, err
	}

	return req, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(domain.DateFormat, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", field, err)
	}
	return &t, nil
}
