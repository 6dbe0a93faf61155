package sitesettings

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек сайта
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SiteSettings, error)
	Upsert(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
