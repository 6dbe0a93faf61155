package check_availability

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/cache/availability"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByVehicleAndStatuses(ctx context.Context, vehicleID int64, statuses []domain.ReservationStatus, overlapping *domain.DateRange) ([]*domain.Reservation, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// AvailabilityCache интерфейс кеша результатов проверки доступности
type AvailabilityCache interface {
	Get(ctx context.Context, vehicleID int64, rng domain.DateRange) (*availability.Entry, error)
	Set(ctx context.Context, vehicleID int64, rng domain.DateRange, entry *availability.Entry) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
