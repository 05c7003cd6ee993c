package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("reschedule_appointment: business not found")

	// ErrStaffNotFound возвращается, когда новый сотрудник не найден
	ErrStaffNotFound = errors.New("reschedule_appointment: staff member not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule возвращается, когда запись не может быть перенесена
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrDateNotBookable возвращается, когда новая дата отклонена политикой
	ErrDateNotBookable = errors.New("reschedule_appointment: date is not bookable")

	// ErrTooLateToBook возвращается, когда новый слот нарушает минимальное
	// время уведомления
	ErrTooLateToBook = errors.New("reschedule_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда новый слот занят на момент коммита
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
