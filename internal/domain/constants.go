package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Rating validation constants
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// Vehicle validation constants
const (
	MinVehicleSeats = 2
	MaxVehicleSeats = 9
)

// BookingBlockingStatuses statuses that block creation of a new reservation.
// Pending reservations count here so that two users cannot both land in
// "pending" for the same dates.
var BookingBlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// AvailabilityBlockingStatuses statuses that block the public availability
// display. Pending requests are a soft hold enforced only at booking time,
// so only approved reservations count.
var AvailabilityBlockingStatuses = []ReservationStatus{
	StatusApproved,
}

// TerminalStatuses statuses from which no further transition is permitted
var TerminalStatuses = []ReservationStatus{
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}
