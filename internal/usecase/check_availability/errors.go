package check_availability

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("check_availability: vehicle not found")

	// ErrInvalidDates возвращается при некорректном диапазоне дат
	ErrInvalidDates = errors.New("check_availability: invalid dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
