package update_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment/models"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEquipment   = "некорректные данные оборудования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "оборудование не найдено"
	msgForbidden          = "изменять оборудование может только владелец"
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

// Handle PUT /api/v1/equipment/{equipmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathID(r, "equipmentId")
	if err != nil {
		h.logger.Warn("PUT /equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /equipment/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.EquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /equipment/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), ownerID, equipmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, equipment.ErrInvalidInput):
			h.logger.Warn("PUT /equipment/{id} - Validation failed: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondBadRequest(w, msgInvalidEquipment)

		case errors.Is(err, equipment.ErrEquipmentNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, equipment.ErrAccessDenied):
			h.logger.Warn("PUT /equipment/{id} - Access denied: equipment_id=%d, user_id=%d", equipmentID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /equipment/{id} - Failed to update equipment: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /equipment/{id} - Equipment updated: equipment_id=%d, owner_id=%d", equipmentID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
