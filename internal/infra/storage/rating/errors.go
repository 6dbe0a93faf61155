package rating

import "errors"

var (
	// ErrRatingNotFound возвращается, когда оценка не найдена
	ErrRatingNotFound = errors.New("rating.repository: rating not found")

	// ErrAlreadyRated возвращается при повторной оценке автомобиля
	// тем же пользователем (нарушение уникального индекса user_id, vehicle_id)
	ErrAlreadyRated = errors.New("rating.repository: user has already rated this vehicle")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rating.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rating.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rating.repository: failed to scan row")
)
