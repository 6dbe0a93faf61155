package create_rating

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/ratings/models"
)

type RatingService interface {
	Create(ctx context.Context, vehicleID int64, req *models.CreateRatingRequest, actor domain.Actor) (*models.RatingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
