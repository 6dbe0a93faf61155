package delete_vehicle

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type VehicleService interface {
	Delete(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
