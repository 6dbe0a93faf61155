package domain

import (
	"math"
	"time"
)

// DateRange is a closed, inclusive-date interval: a reservation occupies
// every calendar day from Start through End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a validated date range (Start strictly before End)
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate checks that Start is strictly before End
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if !r.Start.Before(r.End) {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two closed intervals share at least one day:
// [a,b] and [c,d] overlap iff a <= d AND c <= b.
// A reservation ending on day N and one starting on day N therefore conflict:
// same-day handover is not permitted.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Days returns the chargeable day count: ceil((End - Start) in calendar days).
// Any partial day rounds up to a full day, so crossing a day boundary is
// always charged.
func (r DateRange) Days() int {
	return int(math.Ceil(r.End.Sub(r.Start).Hours() / 24))
}

// HasConflict reports whether the candidate range overlaps any of the given
// reservations. Pure function; the caller pre-filters by blocking status set.
func HasConflict(candidate DateRange, existing []*Reservation) bool {
	for _, res := range existing {
		if candidate.Overlaps(res.Range()) {
			return true
		}
	}
	return false
}

// FindConflicts returns the reservations whose ranges overlap the candidate
func FindConflicts(candidate DateRange, existing []*Reservation) []*Reservation {
	conflicts := make([]*Reservation, 0)
	for _, res := range existing {
		if candidate.Overlaps(res.Range()) {
			conflicts = append(conflicts, res)
		}
	}
	return conflicts
}
