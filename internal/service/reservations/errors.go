package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied возвращается, когда у актора нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition возвращается, когда переход статуса не разрешен таблицей переходов
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTerminalState возвращается при попытке изменить бронирование в терминальном статусе
	ErrTerminalState = errors.New("reservation is in a terminal state")

	// ErrStatusConflict возвращается при проигрыше оптимистичной гонки:
	// статус уже изменён конкурентным запросом, нужно перечитать состояние
	ErrStatusConflict = errors.New("reservation status changed concurrently")

	// ErrInvalidStatus возвращается при неизвестном значении статуса
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
