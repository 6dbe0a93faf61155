package update_site_settings

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/sitesettings/models"
)

type SettingsService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest, actor domain.Actor) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
