package search_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment"
)

const (
	msgInvalidCategoryID = "некорректный ID категории"
	msgInvalidSearch     = "некорректные параметры поиска"
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

// Handle GET /api/v1/equipment?q=drill&categoryId=1&sort=price_asc
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /equipment - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		if errors.Is(err, equipment.ErrInvalidInput) {
			h.logger.Warn("GET /equipment - Invalid search: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSearch)
			return
		}
		h.logger.Error("GET /equipment - Search failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
