package check_availability

import "time"

// Request модель запроса проверки доступности автомобиля
type Request struct {
	VehicleID int64     // ID автомобиля
	StartDate time.Time // Дата начала интересующего периода (включительно)
	EndDate   time.Time // Дата окончания периода (включительно)
}

// Conflict бронирование, блокирующее запрошенные даты
type Conflict struct {
	ReservationID int64     // ID бронирования
	StartDate     time.Time // Дата начала
	EndDate       time.Time // Дата окончания
}

// Response модель ответа проверки доступности
type Response struct {
	VehicleID   int64      // ID автомобиля
	IsAvailable bool       // Свободен ли автомобиль на весь период
	Conflicts   []Conflict // Подтвержденные бронирования, пересекающиеся с периодом
}
