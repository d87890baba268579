package create_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEquipment   = "некорректные данные оборудования"
	msgMissingUserID      = "отсутствует ID пользователя"
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

// Handle POST /api/v1/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /equipment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.EquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), ownerID, &req)
	if err != nil {
		if errors.Is(err, equipment.ErrInvalidInput) {
			h.logger.Warn("POST /equipment - Validation failed: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidEquipment)
			return
		}
		h.logger.Error("POST /equipment - Failed to create equipment: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /equipment - Equipment created: equipment_id=%d, owner_id=%d", result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
