package get_owner_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
	"github.com/m04kA/EquipShare-BookingService/internal/service/bookings"
	"github.com/m04kA/EquipShare-BookingService/internal/service/bookings/models"
	"github.com/m04kA/EquipShare-BookingService/pkg/ptr"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус бронирования"
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

// Handle GET /api/v1/me/booking-requests?status=Pending
// Заявки на оборудование текущего пользователя как владельца.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /me/booking-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.ListBookingsRequest{UserID: ownerID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	result, err := h.service.GetOwnerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /me/booking-requests - Invalid status filter: owner_id=%d", ownerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /me/booking-requests - Failed to get bookings: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/booking-requests - Bookings retrieved: owner_id=%d, count=%d", ownerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
