package update_booking_status

// Request модель запроса на изменение статуса
type Request struct {
	BookingID int64  // ID бронирования
	Status    string // Approved, Rejected или Completed
	UserID    int64  // ID пользователя, из контекста запроса
}

// Response модель ответа
type Response struct {
	BookingID      int64
	PreviousStatus string
	Status         string
	Changed        bool // false, если статус уже был установлен
}
