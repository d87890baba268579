package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EquipShare-BookingService/internal/api/handlers"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/EquipShare-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidBooking     = "некорректные параметры бронирования"
	msgEquipmentNotFound  = "оборудование не найдено"
	msgSelfBooking        = "нельзя арендовать собственное оборудование"
	msgDatesUnavailable   = "выбранные даты недоступны"
	msgDateInPast         = "дата начала аренды уже прошла"
	msgBusy               = "оборудование сейчас бронируется, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDatesUnavailable):
			h.logger.Warn("POST /bookings - Dates unavailable: user_id=%d, equipment_id=%d", userID, req.EquipmentID)
			handlers.RespondConflict(w, msgDatesUnavailable)

		case errors.Is(err, createBooking.ErrEquipmentNotFound):
			h.logger.Warn("POST /bookings - Equipment not found: equipment_id=%d", req.EquipmentID)
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		case errors.Is(err, createBooking.ErrSelfBookingForbidden):
			h.logger.Warn("POST /bookings - Self booking: user_id=%d, equipment_id=%d", userID, req.EquipmentID)
			handlers.RespondForbidden(w, msgSelfBooking)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Start date in the past: user_id=%d, equipment_id=%d", userID, req.EquipmentID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid booking: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidBooking)

		case errors.Is(err, createBooking.ErrBusy):
			h.logger.Warn("POST /bookings - Equipment busy: equipment_id=%d", req.EquipmentID)
			handlers.RespondServiceUnavailable(w, msgBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, equipment_id=%d, error=%v",
				userID, req.EquipmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, equipment_id=%d",
		result.ID, userID, req.EquipmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
