package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	ratingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rating"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/service/ratings/models"
)

// Service сервис для работы с оценками автомобилей
type Service struct {
	ratingRepo      RatingRepository
	vehicleRepo     VehicleRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса оценок
func NewService(
	ratingRepo RatingRepository,
	vehicleRepo VehicleRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ratingRepo:      ratingRepo,
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Create добавляет оценку автомобилю и пересчитывает агрегат рейтинга.
// Вставка и пересчет выполняются в одной транзакции; первым шагом
// блокируется строка автомобиля, поэтому параллельные пересчеты по одному
// автомобилю сериализуются и агрегат считается по полному набору
func (s *Service) Create(ctx context.Context, vehicleID int64, req *models.CreateRatingRequest, actor domain.Actor) (*models.RatingResponse, error) {
	if err := domain.ValidateScore(req.Score); err != nil {
		s.logger.Warn("Create: invalid score=%d from user=%d", req.Score, actor.ID)
		return nil, fmt.Errorf("%w: score must be between %d and %d",
			ErrInvalidScore, domain.MinRatingScore, domain.MaxRatingScore)
	}

	verified, err := s.reservationRepo.HasCompletedReservation(ctx, actor.ID, vehicleID)
	if err != nil {
		s.logger.Error("Create: completed reservation lookup error for user=%d vehicle=%d: %v",
			actor.ID, vehicleID, err)
		return nil, fmt.Errorf("%w: Create - reservation lookup: %v", ErrInternal, err)
	}

	rating := &domain.Rating{
		UserID:           actor.ID,
		VehicleID:        vehicleID,
		Score:            req.Score,
		Comment:          req.Comment,
		IsVerifiedRental: verified,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, txErr := s.vehicleRepo.GetByID(ctx, vehicleID); txErr != nil {
			return txErr
		}

		created, txErr := s.ratingRepo.Create(ctx, rating)
		if txErr != nil {
			return txErr
		}
		rating = created

		return s.recomputeAggregate(ctx, vehicleID)
	})
	if err != nil {
		switch {
		case errors.Is(err, vehicleRepo.ErrVehicleNotFound):
			s.logger.Warn("Create: vehicle id=%d not found", vehicleID)
			return nil, ErrVehicleNotFound

		case errors.Is(err, ratingRepo.ErrAlreadyRated):
			s.logger.Warn("Create: user=%d already rated vehicle=%d", actor.ID, vehicleID)
			return nil, ErrAlreadyRated

		default:
			s.logger.Error("Create: transaction failed for user=%d vehicle=%d: %v", actor.ID, vehicleID, err)
			return nil, fmt.Errorf("%w: Create - transaction: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Create: rating id=%d created by user=%d for vehicle=%d (score=%d, verified=%t)",
		rating.ID, actor.ID, vehicleID, rating.Score, rating.IsVerifiedRental)
	return models.FromDomainRating(rating), nil
}

// Delete удаляет оценку и пересчитывает агрегат рейтинга.
// Доступно автору оценки и администраторам
func (s *Service) Delete(ctx context.Context, ratingID int64, actor domain.Actor) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, ratingRepo.ErrRatingNotFound) {
			s.logger.Warn("Delete: rating id=%d not found", ratingID)
			return ErrRatingNotFound
		}
		s.logger.Error("Delete: rating lookup error for id=%d: %v", ratingID, err)
		return fmt.Errorf("%w: Delete - rating lookup: %v", ErrInternal, err)
	}

	if !actor.IsAdmin() && rating.UserID != actor.ID {
		s.logger.Warn("Delete: access denied for user=%d to rating=%d", actor.ID, ratingID)
		return ErrAccessDenied
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, txErr := s.vehicleRepo.GetByID(ctx, rating.VehicleID); txErr != nil {
			return txErr
		}

		if txErr := s.ratingRepo.Delete(ctx, ratingID); txErr != nil {
			return txErr
		}

		return s.recomputeAggregate(ctx, rating.VehicleID)
	})
	if err != nil {
		if errors.Is(err, ratingRepo.ErrRatingNotFound) {
			return ErrRatingNotFound
		}
		s.logger.Error("Delete: transaction failed for rating=%d: %v", ratingID, err)
		return fmt.Errorf("%w: Delete - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: rating id=%d deleted by actor=%d", ratingID, actor.ID)
	return nil
}

// ListByVehicle получает оценки автомобиля вместе с агрегатом
func (s *Service) ListByVehicle(ctx context.Context, vehicleID int64) (*models.RatingListResponse, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("ListByVehicle: vehicle id=%d not found", vehicleID)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("ListByVehicle: vehicle lookup error for id=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: ListByVehicle - vehicle lookup: %v", ErrInternal, err)
	}

	ratings, err := s.ratingRepo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		s.logger.Error("ListByVehicle: repository error for vehicle=%d: %v", vehicleID, err)
		return nil, fmt.Errorf("%w: ListByVehicle - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRatingList(ratings), nil
}

// recomputeAggregate пересчитывает рейтинг автомобиля по полному набору оценок.
// Вызывается только внутри транзакции, после блокировки строки автомобиля
func (s *Service) recomputeAggregate(ctx context.Context, vehicleID int64) error {
	ratings, err := s.ratingRepo.GetByVehicleID(ctx, vehicleID)
	if err != nil {
		return err
	}

	return s.vehicleRepo.UpdateRating(ctx, vehicleID, domain.RecomputeRating(ratings))
}
