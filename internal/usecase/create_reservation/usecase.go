package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
)

// UseCase use case для создания бронирования автомобиля
type UseCase struct {
	reservationRepo ReservationRepository
	vehicleRepo     VehicleRepository
	txManager       TransactionManager
	events          EventPublisher
	cache           AvailabilityCache
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// events и cache опциональны (nil, если Kafka/Redis выключены в конфиге)
func NewUseCase(
	reservationRepo ReservationRepository,
	vehicleRepo VehicleRepository,
	txManager TransactionManager,
	events EventPublisher,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		vehicleRepo:     vehicleRepo,
		txManager:       txManager,
		events:          events,
		cache:           cache,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и вставка выполняются в одной сериализуемой
// транзакции: строка автомобиля блокируется FOR UPDATE, поэтому из
// конкурентных запросов на пересекающиеся даты успешным будет ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, vehicle=%d, dates=%s..%s",
		req.UserID, req.VehicleID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация диапазона дат
	rng, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid date range: %v", err)
		return nil, fmt.Errorf("%w: startDate must be strictly before endDate", ErrInvalidDates)
	}

	// 3. Дата начала не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateStartDate(req.StartDate, now); err != nil {
		uc.logger.Warn("CreateReservation: start date %s is in the past",
			req.StartDate.Format(domain.DateFormat))
		return nil, err
	}

	var result *domain.Reservation

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем автомобиль с блокировкой строки
		vehicle, err := uc.vehicleRepo.GetByID(txCtx, req.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				uc.logger.Warn("CreateReservation: vehicle id=%d not found", req.VehicleID)
				return ErrVehicleNotFound
			}
			uc.logger.Error("CreateReservation: failed to get vehicle id=%d: %v", req.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}

		// 4.2. Автомобиль не должен быть снят с аренды
		if !vehicle.IsAvailable {
			uc.logger.Warn("CreateReservation: vehicle id=%d is unavailable", req.VehicleID)
			return ErrVehicleUnavailable
		}

		// 4.3. Получаем блокирующие бронирования, пересекающиеся с датами запроса
		blocking, err := uc.reservationRepo.GetByVehicleAndStatuses(
			txCtx, req.VehicleID, domain.BookingBlockingStatuses, &rng)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get blocking reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		// 4.4. Проверяем конфликт дат (границы включительно)
		if domain.HasConflict(rng, blocking) {
			uc.logger.Warn("CreateReservation: dates conflict for vehicle=%d, %d blocking reservations",
				req.VehicleID, len(blocking))
			return ErrDatesConflict
		}

		// 4.5. Считаем стоимость: ceil-дни * дневная ставка
		price, err := domain.ComputePrice(vehicle.DayRate, rng)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to compute price for vehicle=%d: %v",
				req.VehicleID, err)
			return fmt.Errorf("%w: failed to compute price: %v", ErrInternal, err)
		}

		// 4.6. Создаем бронирование в статусе pending
		reservation := &domain.Reservation{
			VehicleID:  req.VehicleID,
			UserID:     req.UserID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			TotalPrice: price,
			Status:     domain.StatusPending,
			Notes:      req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, price=%.2f",
		result.ID, result.TotalPrice)

	// 5. Инвалидируем кеш доступности автомобиля
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, req.VehicleID); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate availability cache for vehicle=%d: %v",
				req.VehicleID, err)
		}
	}

	// 6. Публикуем событие (best-effort, ошибки не прерывают запрос)
	if uc.events != nil {
		if err := uc.events.ReservationCreated(ctx, result); err != nil {
			uc.logger.Warn("CreateReservation: failed to publish event for reservation=%d: %v",
				result.ID, err)
		}
	}

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		VehicleID:  result.VehicleID,
		StartDate:  result.StartDate,
		EndDate:    result.EndDate,
		Days:       rng.Days(),
		TotalPrice: result.TotalPrice,
		Status:     string(result.Status),
		Notes:      result.Notes,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
