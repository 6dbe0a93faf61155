package get_site_settings

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/sitesettings/models"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
