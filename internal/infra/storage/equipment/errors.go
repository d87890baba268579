package equipment

import "errors"

var (
	// ErrEquipmentNotFound возвращается, когда оборудование не найдено
	ErrEquipmentNotFound = errors.New("equipment.repository: equipment not found")

	// ErrEquipmentInUse возвращается, когда на оборудование ссылаются бронирования
	ErrEquipmentInUse = errors.New("equipment.repository: equipment is referenced by bookings")

	// ErrReferenceNotFound возвращается, когда не найдена категория или владелец
	ErrReferenceNotFound = errors.New("equipment.repository: referenced category or owner not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("equipment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("equipment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("equipment.repository: failed to scan row")
)
