package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation is a booking record linking a user, a vehicle and a date range
// with a lifecycle status. Reservations are never deleted; status is the only
// terminal marker.
type Reservation struct {
	ID        int64
	VehicleID int64
	UserID    int64
	StartDate time.Time
	EndDate   time.Time

	// TotalPrice is fixed at creation time and never recomputed
	TotalPrice float64
	Status     ReservationStatus

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Range returns the reservation's date range
func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// IsTerminal returns true if no further status transition is permitted
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusRejected ||
		r.Status == StatusCompleted ||
		r.Status == StatusCancelled
}

// IsBlocking returns true if the reservation participates in booking-time
// conflict checks
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// transitions is the explicit status transition table. Anything not listed
// here is an invalid transition regardless of actor.
var transitions = map[ReservationStatus]map[ReservationStatus]struct{}{
	StatusPending: {
		StatusApproved:  {},
		StatusRejected:  {},
		StatusCancelled: {},
	},
	StatusApproved: {
		StatusCancelled: {},
		StatusCompleted: {},
	},
}

// CanTransition reports whether the transition table permits from -> to
func CanTransition(from, to ReservationStatus) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// ValidateTransition validates a requested status change against the
// transition table and the actor's permissions.
//
// Rules:
//   - a non-owning, non-admin actor may not transition at all (ErrForbidden)
//   - a non-admin owner may only transition to cancelled (ErrForbidden otherwise)
//   - a terminal reservation accepts no transition (ErrTerminalState)
//   - anything outside the transition table is ErrInvalidTransition
func (r *Reservation) ValidateTransition(target ReservationStatus, actor Actor) error {
	if !IsValidStatus(target) {
		return ErrInvalidStatus
	}

	if !actor.IsAdmin() {
		if r.UserID != actor.ID {
			return ErrForbidden
		}
		if target != StatusCancelled {
			return ErrForbidden
		}
	}

	if r.IsTerminal() {
		return ErrTerminalState
	}

	if !CanTransition(r.Status, target) {
		return ErrInvalidTransition
	}

	return nil
}

// IsValidStatus returns true for a known status value
func IsValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
