package reschedule_appointment

import (
	"time"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64     // ID переносимой записи
	UserID        int64     // Кто переносит: клиент или менеджер
	Date          time.Time // Новая дата (без времени)
	StartTime     string    // Новое время начала, "10:00" или "10:00 AM"
	StaffID       *int64    // Новый сотрудник (опционально, иначе прежний)
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64     // ID записи
	BusinessID      int64     // ID бизнеса
	LocationID      int64     // ID точки
	StaffID         int64     // Назначенный сотрудник
	ClientID        int64     // ID клиента
	Date            time.Time // Новая дата
	StartTime       string    // Новое время начала, "10:00"
	DurationMinutes int       // Длительность записи
	Status          string    // Статус записи
}
