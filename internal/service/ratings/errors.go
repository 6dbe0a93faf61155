package ratings

import "errors"

var (
	// ErrRatingNotFound возвращается, когда оценка не найдена
	ErrRatingNotFound = errors.New("rating not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrAlreadyRated возвращается при повторной оценке автомобиля тем же пользователем
	ErrAlreadyRated = errors.New("vehicle already rated by this user")

	// ErrAccessDenied возвращается, когда актор пытается удалить чужую оценку
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidScore возвращается при оценке вне диапазона 1-5
	ErrInvalidScore = errors.New("invalid rating score")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ratings service: internal error")
)
