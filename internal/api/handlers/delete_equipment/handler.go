package delete_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "оборудование не найдено"
	msgForbidden          = "удалять оборудование может только владелец"
	msgInUse              = "на оборудование есть бронирования, удаление невозможно"
)

type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/equipment/{equipmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathID(r, "equipmentId")
	if err != nil {
		h.logger.Warn("DELETE /equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /equipment/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, equipmentID); err != nil {
		switch {
		case errors.Is(err, equipment.ErrEquipmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, equipment.ErrAccessDenied):
			h.logger.Warn("DELETE /equipment/{id} - Access denied: equipment_id=%d, user_id=%d", equipmentID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, equipment.ErrEquipmentInUse):
			h.logger.Warn("DELETE /equipment/{id} - Equipment in use: equipment_id=%d", equipmentID)
			handlers.RespondConflict(w, msgInUse)

		default:
			h.logger.Error("DELETE /equipment/{id} - Failed to delete equipment: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /equipment/{id} - Equipment deleted: equipment_id=%d, owner_id=%d", equipmentID, ownerID)
	w.WriteHeader(http.StatusNoContent)
}
