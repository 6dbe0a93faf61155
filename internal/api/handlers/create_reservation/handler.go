package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser        = "отсутствует ID пользователя"
	msgVehicleNotFound    = "автомобиль не найден"
	msgVehicleUnavailable = "автомобиль недоступен для аренды"
	msgDatesConflict      = "выбранные даты пересекаются с существующим бронированием"
	msgInvalidDates       = "дата начала должна быть строго раньше даты окончания"
	msgDateInPast         = "дата начала аренды уже прошла"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.logger.Warn("POST /reservations - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrDatesConflict):
			h.logger.Warn("POST /reservations - Dates conflict: user_id=%d, vehicle_id=%d",
				actor.ID, req.VehicleID)
			handlers.RespondConflict(w, msgDatesConflict)

		case errors.Is(err, createReservation.ErrVehicleNotFound):
			h.logger.Warn("POST /reservations - Vehicle not found: vehicle_id=%d", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createReservation.ErrVehicleUnavailable):
			h.logger.Warn("POST /reservations - Vehicle unavailable: vehicle_id=%d", req.VehicleID)
			handlers.RespondConflict(w, msgVehicleUnavailable)

		case errors.Is(err, createReservation.ErrInvalidDates):
			h.logger.Warn("POST /reservations - Invalid dates: user_id=%d, vehicle_id=%d",
				actor.ID, req.VehicleID)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, createReservation.ErrDateInPast):
			h.logger.Warn("POST /reservations - Start date in past: user_id=%d, vehicle_id=%d",
				actor.ID, req.VehicleID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, vehicle_id=%d, error=%v",
				actor.ID, req.VehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, vehicle_id=%d",
		result.ID, actor.ID, req.VehicleID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
