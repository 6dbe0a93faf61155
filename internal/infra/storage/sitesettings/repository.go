package sitesettings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"id",
	"site_name",
	"site_logo_url",
	"site_description",
	"company_email",
	"company_phone",
	"company_address",
	"footer_text",
	"site_url",
	"social_facebook",
	"social_twitter",
	"social_instagram",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с настройками сайта
// Настройки хранятся одной строкой
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущие настройки сайта
func (r *Repository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("site_settings").
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.SiteSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.SiteName,
		&s.SiteLogoURL,
		&s.SiteDescription,
		&s.CompanyEmail,
		&s.CompanyPhone,
		&s.CompanyAddress,
		&s.FooterText,
		&s.SiteURL,
		&s.SocialFacebook,
		&s.SocialTwitter,
		&s.SocialInstagram,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert сохраняет настройки сайта: обновляет существующую строку
// или создает первую
func (r *Repository) Upsert(ctx context.Context, s *domain.SiteSettings) (*domain.SiteSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	existing, err := r.Get(ctx)
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return nil, err
	}

	if existing == nil {
		query, args, err := psqlbuilder.Insert("site_settings").
			Columns(
				"site_name",
				"site_logo_url",
				"site_description",
				"company_email",
				"company_phone",
				"company_address",
				"footer_text",
				"site_url",
				"social_facebook",
				"social_twitter",
				"social_instagram",
			).
			Values(
				s.SiteName,
				s.SiteLogoURL,
				s.SiteDescription,
				s.CompanyEmail,
				s.CompanyPhone,
				s.CompanyAddress,
				s.FooterText,
				s.SiteURL,
				s.SocialFacebook,
				s.SocialTwitter,
				s.SocialInstagram,
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt, updatedAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		return s, nil
	}

	query, args, err := psqlbuilder.Update("site_settings").
		Set("site_name", s.SiteName).
		Set("site_logo_url", s.SiteLogoURL).
		Set("site_description", s.SiteDescription).
		Set("company_email", s.CompanyEmail).
		Set("company_phone", s.CompanyPhone).
		Set("company_address", s.CompanyAddress).
		Set("footer_text", s.FooterText).
		Set("site_url", s.SiteURL).
		Set("social_facebook", s.SocialFacebook).
		Set("social_twitter", s.SocialTwitter).
		Set("social_instagram", s.SocialInstagram).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": existing.ID}).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute update: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
