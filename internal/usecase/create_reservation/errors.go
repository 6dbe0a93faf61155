package create_reservation

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("create_reservation: vehicle not found")

	// ErrVehicleUnavailable возвращается, когда автомобиль снят с аренды администратором
	ErrVehicleUnavailable = errors.New("create_reservation: vehicle is unavailable")

	// ErrDatesConflict возвращается, когда даты пересекаются с активным бронированием
	ErrDatesConflict = errors.New("create_reservation: dates conflict with an existing reservation")

	// ErrInvalidDates возвращается при некорректном диапазоне дат
	ErrInvalidDates = errors.New("create_reservation: invalid reservation dates")

	// ErrDateInPast возвращается, когда дата начала аренды уже прошла
	ErrDateInPast = errors.New("create_reservation: start date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
