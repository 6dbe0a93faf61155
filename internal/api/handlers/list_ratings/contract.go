package list_ratings

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/ratings/models"
)

type RatingService interface {
	ListByVehicle(ctx context.Context, vehicleID int64) (*models.RatingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
