package availability

import "errors"

var (
	// ErrInvalidDateRange возвращается, если дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("availability: invalid date range")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
