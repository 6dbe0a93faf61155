package domain

import "time"

// VehicleCategory represents the catalog category of a vehicle
type VehicleCategory string

const (
	CategoryEconomy  VehicleCategory = "economy"
	CategoryStandard VehicleCategory = "standard"
	CategoryLuxury   VehicleCategory = "luxury"
	CategorySports   VehicleCategory = "sports"
	CategorySUV      VehicleCategory = "suv"
	CategoryVan      VehicleCategory = "van"
)

// Transmission represents the gearbox type
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

// FuelType represents the fuel type
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
)

// Vehicle represents a rentable vehicle in the catalog
type Vehicle struct {
	ID           int64
	Brand        string
	Model        string
	Year         int
	Category     VehicleCategory
	DayRate      float64
	Transmission Transmission
	FuelType     FuelType
	Seats        int
	Mileage      int
	ImageURL     *string

	// IsAvailable is a manual admin override, independent of bookings
	IsAvailable bool

	// Aggregate rating, recomputed from the full rating set on every
	// rating add/remove
	RatingAverage float64
	RatingCount   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VehicleFilter filter for catalog listing
type VehicleFilter struct {
	Category *VehicleCategory // optional category filter
	Search   *string          // optional substring match on brand/model
}

// IsValidCategory returns true for a known category value
func IsValidCategory(c VehicleCategory) bool {
	switch c {
	case CategoryEconomy, CategoryStandard, CategoryLuxury, CategorySports, CategorySUV, CategoryVan:
		return true
	default:
		return false
	}
}

// IsValidTransmission returns true for a known transmission value
func IsValidTransmission(t Transmission) bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

// IsValidFuelType returns true for a known fuel type value
func IsValidFuelType(f FuelType) bool {
	switch f {
	case FuelGasoline, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	default:
		return false
	}
}
