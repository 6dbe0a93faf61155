package domain

import "time"

// SiteSettings is the single-row, admin-managed site configuration
// (branding and contact data shown by the frontend)
type SiteSettings struct {
	ID              int64
	SiteName        string
	SiteLogoURL     *string
	SiteDescription string
	CompanyEmail    string
	CompanyPhone    string
	CompanyAddress  string
	FooterText      string
	SiteURL         string

	SocialFacebook  *string
	SocialTwitter   *string
	SocialInstagram *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default site settings values
const (
	DefaultSiteName        = "RentaCar"
	DefaultSiteDescription = "Car rental marketplace"
	DefaultCompanyEmail    = "info@rentacar.example"
	DefaultFooterText      = "© {year} {siteName}. All rights reserved."
)
