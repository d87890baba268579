package get_booked_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/service/bookings"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgEquipmentNotFound  = "оборудование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/booked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathID(r, "equipmentId")
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/booked-dates - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	result, err := h.service.GetBookedDates(r.Context(), equipmentID)
	if err != nil {
		if errors.Is(err, bookings.ErrEquipmentNotFound) {
			h.logger.Warn("GET /equipment/{id}/booked-dates - Equipment not found: equipment_id=%d", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)
			return
		}
		h.logger.Error("GET /equipment/{id}/booked-dates - Failed: equipment_id=%d, error=%v", equipmentID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
