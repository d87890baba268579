package equipment

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("equipment: equipment not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец оборудования
	ErrAccessDenied = errors.New("equipment: access denied")

	// ErrEquipmentInUse возвращается при удалении оборудования, на которое есть бронирования
	ErrEquipmentInUse = errors.New("equipment: equipment has bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("equipment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("equipment: internal error")
)
