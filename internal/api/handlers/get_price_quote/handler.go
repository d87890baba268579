package get_price_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/service/pricing"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod      = "некорректный период аренды"
	msgEquipmentNotFound  = "оборудование не найдено"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{equipmentId}/price-quote?type=one_day&date=2025-01-10
// или ?type=multi_day&startDate=2025-01-10&endDate=2025-01-12
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathID(r, "equipmentId")
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/price-quote - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	q := r.URL.Query()
	bookingReq, err := handlers.ParseBookingRequest(q.Get("type"), q.Get("date"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/price-quote - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	quote, err := h.service.Quote(r.Context(), equipmentID, bookingReq)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrEquipmentNotFound):
			h.logger.Warn("GET /equipment/{id}/price-quote - Equipment not found: equipment_id=%d", equipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, pricing.ErrInvalidInput), errors.Is(err, pricing.ErrInvalidDateRange):
			h.logger.Warn("GET /equipment/{id}/price-quote - Invalid period: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /equipment/{id}/price-quote - Failed: equipment_id=%d, error=%v", equipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, quote)
}
