package delete_rating

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type RatingService interface {
	Delete(ctx context.Context, ratingID int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
