package domain

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusArrived    AppointmentStatus = "arrived"
	StatusStarted    AppointmentStatus = "started"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusDidNotShow AppointmentStatus = "did_not_show"
)

// Appointment represents a client appointment in the system
type Appointment struct {
	ID         int64
	BusinessID int64
	LocationID int64

	// StaffID nil означает "любой сотрудник" — запись создана без
	// назначения и не блокирует время конкретного сотрудника
	StaffID  *int64
	ClientID int64

	Date            time.Time // Календарный день (без времени)
	StartTime       timeofday.Minutes
	DurationMinutes int

	// BufferMinutes nil для легаси-записей; при проверке конфликтов
	// применяется дефолтный буфер бизнеса
	BufferMinutes *int

	Status AppointmentStatus

	// Denormalized data for history
	ServiceNames string
	TotalPrice   float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksSlot reports whether the appointment occupies its staff member's
// time. Only pending and confirmed appointments are conflict-relevant;
// cancelled, completed and did-not-show appointments never block a slot.
func (a *Appointment) BlocksSlot() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// OccupiedInterval returns the half-open minute interval the appointment
// occupies, including its buffer. Legacy appointments without a recorded
// buffer fall back to the business-wide default.
func (a *Appointment) OccupiedInterval(defaultBufferMinutes int) (timeofday.Minutes, timeofday.Minutes) {
	buffer := defaultBufferMinutes
	if a.BufferMinutes != nil {
		buffer = *a.BufferMinutes
	}
	return a.StartTime, a.StartTime.Add(a.DurationMinutes + buffer)
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the appointment can be moved
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// AppointmentsFilter фильтр для выборки записей бизнеса
type AppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	LocationID      *int64             // Фильтр по точке (опционально)
	StaffID         *int64             // Фильтр по сотруднику (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые/завершённые записи
}
