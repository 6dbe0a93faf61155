package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-RentalService/internal/service/vehicles/models"
)

// Service сервис для работы с каталогом автомобилей
type Service struct {
	vehicleRepo VehicleRepository
	cache       AvailabilityCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
// cache опционален (nil, если Redis выключен в конфиге)
func NewService(vehicleRepo VehicleRepository, cache AvailabilityCache, logger Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Create создает автомобиль в каталоге (только для администраторов)
func (s *Service) Create(ctx context.Context, req *models.CreateVehicleRequest, actor domain.Actor) (*models.VehicleResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("Create: access denied for actor=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	if err := validateVehicleRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.vehicleRepo.Create(ctx, req.ToDomainVehicle())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: vehicle id=%d created by admin=%d (%s %s)",
		created.ID, actor.ID, created.Brand, created.Model)
	return models.FromDomainVehicle(created), nil
}

// GetByID получает автомобиль по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VehicleResponse, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("GetByID: vehicle id=%d not found", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("GetByID: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicle(v), nil
}

// List получает список автомобилей каталога с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListVehiclesRequest) (*models.VehicleListResponse, error) {
	filter := domain.VehicleFilter{Search: req.Search}

	if req.Category != nil {
		category := domain.VehicleCategory(*req.Category)
		if !domain.IsValidCategory(category) {
			s.logger.Warn("List: invalid category=%s", *req.Category)
			return nil, fmt.Errorf("%w: unknown category", ErrInvalidInput)
		}
		filter.Category = &category
	}

	vehicles, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicleList(vehicles), nil
}

// Update полностью обновляет автомобиль (только для администраторов)
// Смена ручного флага доступности инвалидирует кеш доступности
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateVehicleRequest, actor domain.Actor) (*models.VehicleResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("Update: access denied for actor=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	if err := validateVehicleRequest(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	v := req.ToDomainVehicle()
	v.ID = id

	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Update: vehicle id=%d not found", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("Update: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("Update: failed to invalidate availability cache for vehicle=%d: %v", id, err)
		}
	}

	updated, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reread vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reread error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: vehicle id=%d updated by admin=%d", id, actor.ID)
	return models.FromDomainVehicle(updated), nil
}

// Delete удаляет автомобиль из каталога (только для администраторов)
func (s *Service) Delete(ctx context.Context, id int64, actor domain.Actor) error {
	if !actor.IsAdmin() {
		s.logger.Warn("Delete: access denied for actor=%d", actor.ID)
		return ErrAccessDenied
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Delete: vehicle id=%d not found", id)
			return ErrVehicleNotFound
		}
		s.logger.Error("Delete: repository error for vehicle id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("Delete: failed to invalidate availability cache for vehicle=%d: %v", id, err)
		}
	}

	s.logger.Info("Delete: vehicle id=%d deleted by admin=%d", id, actor.ID)
	return nil
}

// validateVehicleRequest проверяет поля запроса создания/обновления
func validateVehicleRequest(req *models.CreateVehicleRequest) error {
	if req.Brand == "" || req.Model == "" {
		return fmt.Errorf("%w: brand and model are required", ErrInvalidInput)
	}
	if req.Year <= 0 {
		return fmt.Errorf("%w: year must be positive", ErrInvalidInput)
	}
	if req.DayRate <= 0 {
		return fmt.Errorf("%w: dayRate must be positive", ErrInvalidInput)
	}
	if !domain.IsValidCategory(domain.VehicleCategory(req.Category)) {
		return fmt.Errorf("%w: unknown category", ErrInvalidInput)
	}
	if !domain.IsValidTransmission(domain.Transmission(req.Transmission)) {
		return fmt.Errorf("%w: unknown transmission", ErrInvalidInput)
	}
	if !domain.IsValidFuelType(domain.FuelType(req.FuelType)) {
		return fmt.Errorf("%w: unknown fuel type", ErrInvalidInput)
	}
	if req.Seats < domain.MinVehicleSeats || req.Seats > domain.MaxVehicleSeats {
		return fmt.Errorf("%w: seats must be between %d and %d",
			ErrInvalidInput, domain.MinVehicleSeats, domain.MaxVehicleSeats)
	}
	if req.Mileage < 0 {
		return fmt.Errorf("%w: mileage must not be negative", ErrInvalidInput)
	}
	return nil
}
