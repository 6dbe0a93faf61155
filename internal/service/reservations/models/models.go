package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID         int64   `json:"id"`
	VehicleID  int64   `json:"vehicleId"`
	UserID     int64   `json:"userId"`
	StartDate  string  `json:"startDate"` // "2025-10-15"
	EndDate    string  `json:"endDate"`   // "2025-10-18"
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:         r.ID,
		VehicleID:  r.VehicleID,
		UserID:     r.UserID,
		StartDate:  r.StartDate.Format(domain.DateFormat),
		EndDate:    r.EndDate.Format(domain.DateFormat),
		TotalPrice: r.TotalPrice,
		Status:     string(r.Status),
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
