package create_appointment

import (
	"time"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64     // ID клиента
	BusinessID int64     // ID бизнеса
	LocationID int64     // ID точки обслуживания
	ServiceIDs []int64   // Корзина услуг (порядок сохраняется)
	Date       time.Time // Дата записи (без времени)
	StartTime  string    // Время начала, "10:00" или "10:00 AM"
	StaffID    *int64    // Закрепленный сотрудник (опционально)
	Notes      *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64     // ID созданной записи
	BusinessID      int64     // ID бизнеса
	LocationID      int64     // ID точки
	StaffID         int64     // Назначенный сотрудник
	ClientID        int64     // ID клиента
	Date            time.Time // Дата записи
	StartTime       string    // Время начала, "10:00"
	DurationMinutes int       // Суммарная длительность услуг
	BufferMinutes   int       // Буфер записи
	Status          string    // Статус записи

	// Денормализованные данные
	ServiceNames string  // Названия услуг через запятую
	TotalPrice   float64 // Суммарная цена
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
