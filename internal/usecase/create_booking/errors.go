package create_booking

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("create_booking: equipment not found")

	// ErrSelfBookingForbidden возвращается, когда владелец пытается арендовать своё оборудование
	ErrSelfBookingForbidden = errors.New("create_booking: owner cannot book own equipment")

	// ErrDatesUnavailable возвращается, когда период пересекается с другим бронированием
	ErrDatesUnavailable = errors.New("create_booking: dates are not available")

	// ErrDateInPast возвращается, когда аренда начинается раньше сегодняшнего дня
	ErrDateInPast = errors.New("create_booking: start date is in the past")

	// ErrBusy возвращается, если не удалось дождаться блокировки оборудования
	ErrBusy = errors.New("create_booking: equipment is busy, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
