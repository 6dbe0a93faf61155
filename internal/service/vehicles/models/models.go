package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CreateVehicleRequest запрос на создание автомобиля
type CreateVehicleRequest struct {
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	DayRate      float64 `json:"dayRate"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuelType"`
	Seats        int     `json:"seats"`
	Mileage      int     `json:"mileage"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	IsAvailable  *bool   `json:"isAvailable,omitempty"` // по умолчанию true
}

// ToDomainVehicle конвертирует запрос в domain модель
func (r *CreateVehicleRequest) ToDomainVehicle() *domain.Vehicle {
	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return &domain.Vehicle{
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		Category:     domain.VehicleCategory(r.Category),
		DayRate:      r.DayRate,
		Transmission: domain.Transmission(r.Transmission),
		FuelType:     domain.FuelType(r.FuelType),
		Seats:        r.Seats,
		Mileage:      r.Mileage,
		ImageURL:     r.ImageURL,
		IsAvailable:  isAvailable,
	}
}

// UpdateVehicleRequest запрос на обновление автомобиля
// Совпадает по форме с созданием: обновление полное, не частичное
type UpdateVehicleRequest = CreateVehicleRequest

// ListVehiclesRequest фильтры каталога
type ListVehiclesRequest struct {
	Category *string `json:"category,omitempty"`
	Search   *string `json:"search,omitempty"`
}

// VehicleResponse ответ с данными автомобиля
type VehicleResponse struct {
	ID           int64   `json:"id"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	DayRate      float64 `json:"dayRate"`
	Transmission string  `json:"transmission"`
	FuelType     string  `json:"fuelType"`
	Seats        int     `json:"seats"`
	Mileage      int     `json:"mileage"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	IsAvailable  bool    `json:"isAvailable"`

	Rating RatingResponse `json:"rating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RatingResponse агрегат рейтинга автомобиля
type RatingResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// VehicleListResponse ответ со списком автомобилей
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// FromDomainVehicle конвертирует domain модель в DTO
func FromDomainVehicle(v *domain.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}

	return &VehicleResponse{
		ID:           v.ID,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		Category:     string(v.Category),
		DayRate:      v.DayRate,
		Transmission: string(v.Transmission),
		FuelType:     string(v.FuelType),
		Seats:        v.Seats,
		Mileage:      v.Mileage,
		ImageURL:     v.ImageURL,
		IsAvailable:  v.IsAvailable,
		Rating: RatingResponse{
			Average: v.RatingAverage,
			Count:   v.RatingCount,
		},
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// FromDomainVehicleList конвертирует список domain моделей в DTO
func FromDomainVehicleList(vehicles []*domain.Vehicle) *VehicleListResponse {
	resp := &VehicleListResponse{
		Vehicles: make([]VehicleResponse, 0, len(vehicles)),
	}

	for _, v := range vehicles {
		if item := FromDomainVehicle(v); item != nil {
			resp.Vehicles = append(resp.Vehicles, *item)
		}
	}

	return resp
}
