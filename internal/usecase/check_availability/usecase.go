package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/infra/cache/availability"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

// UseCase use case проверки доступности автомобиля на период.
// Даты блокируются только подтвержденными бронированиями: ожидающие
// заявки не мешают другим пользователям запрашивать те же даты
type UseCase struct {
	reservationRepo ReservationRepository
	vehicleRepo     VehicleRepository
	cache           AvailabilityCache
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache опционален (nil, если Redis выключен в конфиге)
func NewUseCase(
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.VehicleID <= 0 {
		return nil, fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}

	rng, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("CheckAvailability: invalid date range for vehicle=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: startDate must be strictly before endDate", ErrInvalidDates)
	}

	// 2. Автомобиль должен существовать
	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CheckAvailability: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// 3. Ручной флаг недоступности перекрывает календарь
	if !vehicle.IsAvailable {
		return &Response{VehicleID: req.VehicleID, IsAvailable: false, Conflicts: []Conflict{}}, nil
	}

	// 4. Пробуем кеш
	if uc.cache != nil {
		entry, err := uc.cache.Get(ctx, req.VehicleID, rng)
		if err != nil {
			uc.logger.Warn("CheckAvailability: cache get failed for vehicle=%d: %v", req.VehicleID, err)
		}
		if entry != nil {
			return responseFromConflicts(req.VehicleID, entry.IsAvailable, entry.Conflicts), nil
		}
	}

	// 5. Получаем подтвержденные бронирования, пересекающиеся с периодом
	approved, err := uc.reservationRepo.GetByVehicleAndStatuses(
		ctx, req.VehicleID, domain.AvailabilityBlockingStatuses, &rng)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get reservations for vehicle=%d: %v",
			req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	conflicts := domain.FindConflicts(rng, approved)
	isAvailable := len(conflicts) == 0

	// 6. Сохраняем результат в кеш
	if uc.cache != nil {
		entry := &availability.Entry{IsAvailable: isAvailable, Conflicts: conflicts}
		if err := uc.cache.Set(ctx, req.VehicleID, rng, entry); err != nil {
			uc.logger.Warn("CheckAvailability: cache set failed for vehicle=%d: %v", req.VehicleID, err)
		}
	}

	return responseFromConflicts(req.VehicleID, isAvailable, conflicts), nil
}

func responseFromConflicts(vehicleID int64, isAvailable bool, conflicts []*domain.Reservation) *Response {
	resp := &Response{
		VehicleID:   vehicleID,
		IsAvailable: isAvailable,
		Conflicts:   make([]Conflict, 0, len(conflicts)),
	}

	for _, res := range conflicts {
		resp.Conflicts = append(resp.Conflicts, Conflict{
			ReservationID: res.ID,
			StartDate:     res.StartDate,
			EndDate:       res.EndDate,
		})
	}

	return resp
}
