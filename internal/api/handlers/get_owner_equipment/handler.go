package get_owner_equipment

import (
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

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

// Handle GET /api/v1/me/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/equipment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /me/equipment - Failed to list equipment: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /me/equipment - Equipment retrieved: owner_id=%d, count=%d", ownerID, len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result)
}
