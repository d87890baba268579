package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец оборудования
	ErrAccessDenied = errors.New("update_booking_status: only the equipment owner can change the status")

	// ErrInvalidTransition возвращается при попытке изменить завершённое или отклонённое бронирование
	ErrInvalidTransition = errors.New("update_booking_status: status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
