package domain

// Default booking policy values, applied by the policy resolution adapter
// when a business document carries no explicit value.
const (
	DefaultServiceDurationMinutes = 60
	DefaultServiceBufferMinutes   = 0
	DefaultMinNoticeHours         = 24
	DefaultMaxAdvanceMonths       = 3
	DefaultSlotIntervalMinutes    = 15

	// LegacyDaysPerMonth правило конвертации для легаси-поля
	// maxAdvanceBookingDays: 1 месяц = 30 дней
	LegacyDaysPerMonth = 30
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConflictRelevantStatuses статусы записей, занимающие слот.
// Отменённые, завершённые и no-show записи слот не блокируют.
var ConflictRelevantStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы, при которых запись не занимает время персонала
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
	StatusDidNotShow,
}
