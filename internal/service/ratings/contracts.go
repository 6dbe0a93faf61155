package ratings

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// RatingRepository интерфейс репозитория оценок
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	GetByID(ctx context.Context, id int64) (*domain.Rating, error)
	GetByVehicleID(ctx context.Context, vehicleID int64) ([]*domain.Rating, error)
	Delete(ctx context.Context, id int64) error
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	UpdateRating(ctx context.Context, id int64, aggregate domain.RatingAggregate) error
}

// ReservationRepository интерфейс репозитория бронирований
// Используется для выставления флага verified-rental
type ReservationRepository interface {
	HasCompletedReservation(ctx context.Context, userID, vehicleID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
