package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек сайта
type UpdateSettingsRequest struct {
	SiteName        string  `json:"siteName"`
	SiteLogoURL     *string `json:"siteLogoUrl,omitempty"`
	SiteDescription string  `json:"siteDescription"`
	CompanyEmail    string  `json:"companyEmail"`
	CompanyPhone    string  `json:"companyPhone"`
	CompanyAddress  string  `json:"companyAddress"`
	FooterText      string  `json:"footerText"`
	SiteURL         string  `json:"siteUrl"`

	SocialFacebook  *string `json:"socialFacebook,omitempty"`
	SocialTwitter   *string `json:"socialTwitter,omitempty"`
	SocialInstagram *string `json:"socialInstagram,omitempty"`
}

// ToDomainSettings конвертирует запрос в domain модель
func (r *UpdateSettingsRequest) ToDomainSettings() *domain.SiteSettings {
	return &domain.SiteSettings{
		SiteName:        r.SiteName,
		SiteLogoURL:     r.SiteLogoURL,
		SiteDescription: r.SiteDescription,
		CompanyEmail:    r.CompanyEmail,
		CompanyPhone:    r.CompanyPhone,
		CompanyAddress:  r.CompanyAddress,
		FooterText:      r.FooterText,
		SiteURL:         r.SiteURL,
		SocialFacebook:  r.SocialFacebook,
		SocialTwitter:   r.SocialTwitter,
		SocialInstagram: r.SocialInstagram,
	}
}

// SettingsResponse ответ с настройками сайта
type SettingsResponse struct {
	SiteName        string  `json:"siteName"`
	SiteLogoURL     *string `json:"siteLogoUrl,omitempty"`
	SiteDescription string  `json:"siteDescription"`
	CompanyEmail    string  `json:"companyEmail"`
	CompanyPhone    string  `json:"companyPhone"`
	CompanyAddress  string  `json:"companyAddress"`
	FooterText      string  `json:"footerText"`
	SiteURL         string  `json:"siteUrl"`

	SocialFacebook  *string `json:"socialFacebook,omitempty"`
	SocialTwitter   *string `json:"socialTwitter,omitempty"`
	SocialInstagram *string `json:"socialInstagram,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.SiteSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		SiteName:        s.SiteName,
		SiteLogoURL:     s.SiteLogoURL,
		SiteDescription: s.SiteDescription,
		CompanyEmail:    s.CompanyEmail,
		CompanyPhone:    s.CompanyPhone,
		CompanyAddress:  s.CompanyAddress,
		FooterText:      s.FooterText,
		SiteURL:         s.SiteURL,
		SocialFacebook:  s.SocialFacebook,
		SocialTwitter:   s.SocialTwitter,
		SocialInstagram: s.SocialInstagram,
		UpdatedAt:       s.UpdatedAt,
	}
}
