package domain

// ComputePrice computes the total rental price from a per-day rate and a
// date range: days * dayRate, with the day count rounded up on any partial
// day. The price is computed once at creation time and never recomputed,
// even if the vehicle's rate later changes.
//
// Currency formatting and rounding to cents are the display layer's concern.
func ComputePrice(dayRate float64, r DateRange) (float64, error) {
	if dayRate <= 0 {
		return 0, ErrInvalidDayRate
	}
	if err := r.Validate(); err != nil {
		return 0, err
	}

	days := r.Days()
	if days <= 0 {
		return 0, ErrInvalidRange
	}

	return float64(days) * dayRate, nil
}
