package get_user_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
)

const msgMissingUser = "отсутствует ID пользователя"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.logger.Warn("GET /reservations/my - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.GetUserReservations(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /reservations/my - Failed to get reservations: user_id=%d, error=%v",
			actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/my - Retrieved %d reservations: user_id=%d",
		len(result.Reservations), actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
