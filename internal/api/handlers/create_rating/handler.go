package create_rating

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/ratings"
	"github.com/m04kA/SMC-RentalService/internal/service/ratings/models"
)

const (
	msgInvalidVehicleID   = "некорректный ID автомобиля"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует ID пользователя"
	msgVehicleNotFound    = "автомобиль не найден"
	msgAlreadyRated       = "вы уже оценили этот автомобиль"
	msgInvalidScore       = "оценка должна быть от 1 до 5"
)

type Handler struct {
	service RatingService
	logger  Logger
}

func NewHandler(service RatingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/vehicles/{vehicleId}/ratings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vehicleID, err := strconv.ParseInt(vars["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /vehicles/{id}/ratings - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	var req models.CreateRatingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vehicles/{id}/ratings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.logger.Warn("POST /vehicles/{id}/ratings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.Create(r.Context(), vehicleID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrVehicleNotFound):
			h.logger.Warn("POST /vehicles/{id}/ratings - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, ratings.ErrAlreadyRated):
			h.logger.Warn("POST /vehicles/{id}/ratings - Already rated: vehicle_id=%d, user_id=%d",
				vehicleID, actor.ID)
			handlers.RespondConflict(w, msgAlreadyRated)

		case errors.Is(err, ratings.ErrInvalidScore):
			h.logger.Warn("POST /vehicles/{id}/ratings - Invalid score: %d", req.Score)
			handlers.RespondBadRequest(w, msgInvalidScore)

		default:
			h.logger.Error("POST /vehicles/{id}/ratings - Failed to create rating: vehicle_id=%d, error=%v",
				vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vehicles/{id}/ratings - Rating created successfully: rating_id=%d, vehicle_id=%d, user_id=%d",
		result.ID, vehicleID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
