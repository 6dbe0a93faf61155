package domain

import "time"

// Rating is a single user's score for a vehicle, unique per (user, vehicle)
type Rating struct {
	ID        int64
	UserID    int64
	VehicleID int64
	Score     int
	Comment   *string

	// IsVerifiedRental is set when the user has a completed reservation
	// for the vehicle
	IsVerifiedRental bool

	CreatedAt time.Time
}

// RatingAggregate is the recomputed rating summary stored on a vehicle
type RatingAggregate struct {
	Average float64
	Count   int
}

// ValidateScore checks that the score is within [MinRatingScore, MaxRatingScore]
func ValidateScore(score int) error {
	if score < MinRatingScore || score > MaxRatingScore {
		return ErrInvalidRating
	}
	return nil
}

// RecomputeRating computes the aggregate over the full rating set.
// Pure function: callers persist the result under the same per-vehicle
// concurrency discipline as reservations.
func RecomputeRating(ratings []*Rating) RatingAggregate {
	if len(ratings) == 0 {
		return RatingAggregate{}
	}

	total := 0
	for _, r := range ratings {
		total += r.Score
	}

	return RatingAggregate{
		Average: float64(total) / float64(len(ratings)),
		Count:   len(ratings),
	}
}
