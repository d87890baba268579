package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("bookings: equipment not found")

	// ErrAccessDenied возвращается, когда пользователь не арендатор и не владелец оборудования
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
