package create_reservation

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64     // ID арендатора
	VehicleID int64     // ID автомобиля
	StartDate time.Time // Дата начала аренды (включительно)
	EndDate   time.Time // Дата окончания аренды (включительно)
	Notes     *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64     // ID созданного бронирования
	UserID     int64     // ID арендатора
	VehicleID  int64     // ID автомобиля
	StartDate  time.Time // Дата начала аренды
	EndDate    time.Time // Дата окончания аренды
	Days       int       // Количество оплачиваемых дней
	TotalPrice float64   // Итоговая стоимость аренды
	Status     string    // Статус бронирования
	Notes      *string   // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
