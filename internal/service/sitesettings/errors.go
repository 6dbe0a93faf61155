package sitesettings

import "errors"

var (
	// ErrAccessDenied возвращается, когда операция доступна только администраторам
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sitesettings service: internal error")
)
