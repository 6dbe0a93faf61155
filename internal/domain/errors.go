package domain

import "errors"

var (
	// ErrInvalidRange возвращается, когда диапазон дат некорректен
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidDayRate возвращается, когда суточный тариф некорректен
	ErrInvalidDayRate = errors.New("invalid day rate")

	// ErrInvalidRating возвращается, когда оценка вне допустимого диапазона
	ErrInvalidRating = errors.New("invalid rating score")

	// ErrInvalidStatus возвращается при неизвестном значении статуса
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrForbidden возвращается, когда у актора нет прав на переход статуса
	ErrForbidden = errors.New("actor is not allowed to perform this transition")

	// ErrTerminalState возвращается при попытке изменить бронирование в терминальном статусе
	ErrTerminalState = errors.New("reservation is in a terminal state")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешен таблицей переходов
	ErrInvalidTransition = errors.New("invalid status transition")
)
