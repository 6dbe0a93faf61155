package sitesettings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/sitesettings"
	"github.com/m04kA/SMC-RentalService/internal/service/sitesettings/models"
)

// Service сервис для работы с настройками сайта
type Service struct {
	repo   SettingsRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(repo SettingsRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Get возвращает настройки сайта.
// Пока администратор не сохранил настройки, отдаются значения по умолчанию
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return models.FromDomainSettings(defaultSettings()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update сохраняет настройки сайта (только для администраторов)
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest, actor domain.Actor) (*models.SettingsResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("Update: access denied for actor=%d", actor.ID)
		return nil, ErrAccessDenied
	}

	if req.SiteName == "" {
		return nil, fmt.Errorf("%w: siteName is required", ErrInvalidInput)
	}
	if req.CompanyEmail == "" {
		return nil, fmt.Errorf("%w: companyEmail is required", ErrInvalidInput)
	}

	saved, err := s.repo.Upsert(ctx, req.ToDomainSettings())
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: site settings saved by admin=%d", actor.ID)
	return models.FromDomainSettings(saved), nil
}

func defaultSettings() *domain.SiteSettings {
	return &domain.SiteSettings{
		SiteName:        domain.DefaultSiteName,
		SiteDescription: domain.DefaultSiteDescription,
		CompanyEmail:    domain.DefaultCompanyEmail,
		FooterText:      domain.DefaultFooterText,
	}
}
