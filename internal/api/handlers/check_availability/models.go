package check_availability

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
)

// ConflictResponse бронирование, блокирующее запрошенный период
type ConflictResponse struct {
	ReservationID int64  `json:"reservationId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VehicleID   int64              `json:"vehicleId"`
	IsAvailable bool               `json:"isAvailable"`
	Conflicts   []ConflictResponse `json:"conflicts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		VehicleID:   resp.VehicleID,
		IsAvailable: resp.IsAvailable,
		Conflicts:   make([]ConflictResponse, 0, len(resp.Conflicts)),
	}

	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			ReservationID: c.ReservationID,
			StartDate:     c.StartDate.Format(domain.DateFormat),
			EndDate:       c.EndDate.Format(domain.DateFormat),
		})
	}

	return out
}
