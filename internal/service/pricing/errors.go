package pricing

import "errors"

var (
	// ErrInvalidFeeRate возвращается, если ставка комиссии вне диапазона [0, 1)
	ErrInvalidFeeRate = errors.New("pricing: platform fee rate must be in [0, 1)")

	// ErrInvalidDailyRate возвращается при неположительной цене за день
	ErrInvalidDailyRate = errors.New("pricing: daily rate must be positive")

	// ErrInvalidDateRange возвращается, если дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("pricing: invalid date range")

	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("pricing: equipment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
