package list_vehicles

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

const msgInvalidFilter = "некорректные параметры фильтра"

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

// Handle GET /api/v1/vehicles?category=suv&search=toyota
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListVehiclesRequest{}

	if category := r.URL.Query().Get("category"); category != "" {
		req.Category = ptr.Ptr(category)
	}
	if search := r.URL.Query().Get("search"); search != "" {
		req.Search = ptr.Ptr(search)
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrInvalidInput):
			h.logger.Warn("GET /vehicles - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /vehicles - Failed to list vehicles: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vehicles - Retrieved %d vehicles", len(result.Vehicles))
	handlers.RespondJSON(w, http.StatusOK, result)
}
