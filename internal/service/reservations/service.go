package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями: чтение и переходы статусов
// Создание бронирования живет в отдельном usecase с сериализуемой транзакцией
type Service struct {
	reservationRepo ReservationRepository
	events          EventPublisher
	cache           AvailabilityCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
// events и cache опциональны (nil, если Kafka/Redis выключены в конфиге)
func NewService(
	reservationRepo ReservationRepository,
	events EventPublisher,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		events:          events,
		cache:           cache,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Доступно владельцу бронирования и администраторам
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d", id, actor.ID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.IsAdmin() && res.UserID != actor.ID {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// GetUserReservations получает бронирования самого актора (сначала новые)
func (s *Service) GetUserReservations(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d", actor.ID)

	reservations, err := s.reservationRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(reservations), actor.ID)
	return models.FromDomainReservationList(reservations), nil
}

// GetAllReservations получает все бронирования (только для администраторов)
func (s *Service) GetAllReservations(ctx context.Context, actor domain.Actor) (*models.ReservationListResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("GetAllReservations: access denied for actor=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	reservations, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAllReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAllReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllReservations: fetched %d reservations for admin=%d", len(reservations), actor.ID)
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus выполняет переход статуса бронирования
//
// Переход валидируется таблицей переходов и правами актора (владелец
// может только отменять, администратор - любые разрешенные переходы).
// Обновление оптимистичное: статус меняется только если он не был
// изменён конкурентным запросом, иначе возвращается ErrStatusConflict
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d -> status=%s by actor=%d (role=%s)",
		id, req.Status, actor.ID, actor.Role)

	target := domain.ReservationStatus(req.Status)
	if !domain.IsValidStatus(target) {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := res.ValidateTransition(target, actor); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			s.logger.Warn("UpdateStatus: forbidden for actor=%d on reservation id=%d", actor.ID, id)
			return nil, ErrAccessDenied
		case errors.Is(err, domain.ErrTerminalState):
			s.logger.Warn("UpdateStatus: reservation id=%d is terminal (status=%s)", id, res.Status)
			return nil, ErrTerminalState
		case errors.Is(err, domain.ErrInvalidStatus):
			return nil, ErrInvalidStatus
		default:
			s.logger.Warn("UpdateStatus: invalid transition %s -> %s for reservation id=%d",
				res.Status, target, id)
			return nil, ErrInvalidTransition
		}
	}

	prev := res.Status

	updated, err := s.reservationRepo.UpdateStatus(ctx, id, prev, target)
	if err != nil {
		switch {
		case errors.Is(err, reservationRepo.ErrStaleStatus):
			s.logger.Warn("UpdateStatus: lost optimistic race for reservation id=%d", id)
			return nil, ErrStatusConflict
		case errors.Is(err, reservationRepo.ErrReservationNotFound):
			return nil, ErrReservationNotFound
		default:
			s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	// Смена статуса меняет множество блокирующих бронирований
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, updated.VehicleID); err != nil {
			s.logger.Warn("UpdateStatus: failed to invalidate availability cache for vehicle=%d: %v",
				updated.VehicleID, err)
		}
	}

	// События best-effort: ошибка публикации не откатывает переход
	if s.events != nil {
		if err := s.events.ReservationStatusChanged(ctx, updated, prev); err != nil {
			s.logger.Error("UpdateStatus: failed to publish status change event for reservation id=%d: %v",
				updated.ID, err)
		}
	}

	s.logger.Info("UpdateStatus: reservation id=%d transitioned %s -> %s", id, prev, target)
	return models.FromDomainReservation(updated), nil
}
