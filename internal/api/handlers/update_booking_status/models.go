package update_booking_status

import (
	updateStatus "github.com/m04kA/EquipShare-BookingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // "Approved" | "Rejected" | "Completed"
}

// UpdateStatusResponse HTTP response model
type UpdateStatusResponse struct {
	BookingID      int64  `json:"bookingId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	Changed        bool   `json:"changed"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateStatus.Response) *UpdateStatusResponse {
	return &UpdateStatusResponse{
		BookingID:      resp.BookingID,
		PreviousStatus: resp.PreviousStatus,
		Status:         resp.Status,
		Changed:        resp.Changed,
	}
}
