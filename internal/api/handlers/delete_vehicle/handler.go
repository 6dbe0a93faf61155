package delete_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles"
)

const (
	msgInvalidVehicleID = "некорректный ID автомобиля"
	msgMissingUser      = "отсутствует ID пользователя"
	msgForbidden        = "операция доступна только администраторам"
	msgNotFound         = "автомобиль не найден"
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

// Handle DELETE /api/v1/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	vehicleID, err := strconv.ParseInt(vars["vehicleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /vehicles/{id} - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.logger.Warn("DELETE /vehicles/{id} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.Delete(r.Context(), vehicleID, actor); err != nil {
		switch {
		case errors.Is(err, vehicles.ErrAccessDenied):
			h.logger.Warn("DELETE /vehicles/{id} - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vehicles.ErrVehicleNotFound):
			h.logger.Warn("DELETE /vehicles/{id} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /vehicles/{id} - Failed to delete vehicle: vehicle_id=%d, error=%v",
				vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vehicles/{id} - Vehicle deleted successfully: vehicle_id=%d, admin_id=%d",
		vehicleID, actor.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
