package delete_rating

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/ratings"
)

const (
	msgInvalidRatingID = "некорректный ID оценки"
	msgMissingUser     = "отсутствует ID пользователя"
	msgNotFound        = "оценка не найдена"
	msgForbidden       = "доступ запрещен"
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

// Handle DELETE /api/v1/ratings/{ratingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ratingID, err := strconv.ParseInt(vars["ratingId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /ratings/{id} - Invalid rating ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRatingID)
		return
	}

	actor, err := middleware.ActorFromContext(r.Context())
	if err != nil {
		h.logger.Warn("DELETE /ratings/{id} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.Delete(r.Context(), ratingID, actor); err != nil {
		switch {
		case errors.Is(err, ratings.ErrRatingNotFound):
			h.logger.Warn("DELETE /ratings/{id} - Rating not found: rating_id=%d", ratingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, ratings.ErrAccessDenied):
			h.logger.Warn("DELETE /ratings/{id} - Access denied: rating_id=%d, user_id=%d",
				ratingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /ratings/{id} - Failed to delete rating: rating_id=%d, error=%v",
				ratingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /ratings/{id} - Rating deleted successfully: rating_id=%d, actor_id=%d",
		ratingID, actor.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
