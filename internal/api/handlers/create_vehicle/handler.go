package create_vehicle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует ID пользователя"
	msgForbidden          = "операция доступна только администраторам"
	msgInvalidInput       = "некорректные данные автомобиля"
)

type Handler struct {
	service VehicleService
	logger  Logger
}

func NewHandler(service VehicleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.logger.Warn("POST /vehicles - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.Create(r.Context(), &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrAccessDenied):
			h.logger.Warn("POST /vehicles - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vehicles.ErrInvalidInput):
			h.logger.Warn("POST /vehicles - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /vehicles - Failed to create vehicle: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vehicles - Vehicle created successfully: vehicle_id=%d, admin_id=%d",
		result.ID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
