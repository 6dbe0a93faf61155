package models

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// CreateRatingRequest запрос на добавление оценки автомобилю
type CreateRatingRequest struct {
	Score   int     `json:"score"`
	Comment *string `json:"comment,omitempty"`
}

// RatingResponse ответ с данными оценки
type RatingResponse struct {
	ID               int64     `json:"id"`
	VehicleID        int64     `json:"vehicleId"`
	UserID           int64     `json:"userId"`
	Score            int       `json:"score"`
	Comment          *string   `json:"comment,omitempty"`
	IsVerifiedRental bool      `json:"isVerifiedRental"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RatingListResponse ответ со списком оценок автомобиля
type RatingListResponse struct {
	Ratings []RatingResponse      `json:"ratings"`
	Summary RatingSummaryResponse `json:"summary"`
}

// RatingSummaryResponse агрегат по оценкам автомобиля
type RatingSummaryResponse struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// FromDomainRating конвертирует domain модель в DTO
func FromDomainRating(r *domain.Rating) *RatingResponse {
	if r == nil {
		return nil
	}

	return &RatingResponse{
		ID:               r.ID,
		VehicleID:        r.VehicleID,
		UserID:           r.UserID,
		Score:            r.Score,
		Comment:          r.Comment,
		IsVerifiedRental: r.IsVerifiedRental,
		CreatedAt:        r.CreatedAt,
	}
}

// FromDomainRatingList конвертирует список оценок и агрегат в DTO
func FromDomainRatingList(ratings []*domain.Rating) *RatingListResponse {
	resp := &RatingListResponse{
		Ratings: make([]RatingResponse, 0, len(ratings)),
	}

	for _, r := range ratings {
		if item := FromDomainRating(r); item != nil {
			resp.Ratings = append(resp.Ratings, *item)
		}
	}

	aggregate := domain.RecomputeRating(ratings)
	resp.Summary = RatingSummaryResponse{
		Average: aggregate.Average,
		Count:   aggregate.Count,
	}

	return resp
}
