package update_vehicle

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

type VehicleService interface {
	Update(ctx context.Context, id int64, req *models.UpdateVehicleRequest, actor domain.Actor) (*models.VehicleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
