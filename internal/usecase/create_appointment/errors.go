package create_appointment

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_appointment: business not found")

	// ErrLocationNotFound возвращается, когда точка не найдена в бизнесе
	ErrLocationNotFound = errors.New("create_appointment: location not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrStaffNotFound возвращается, когда закрепленный сотрудник не найден
	ErrStaffNotFound = errors.New("create_appointment: staff member not found")

	// ErrStaffNotEligible возвращается, когда закрепленный сотрудник не
	// покрывает корзину услуг или не работает на точке
	ErrStaffNotEligible = errors.New("create_appointment: staff member cannot perform requested services")

	// ErrDateNotBookable возвращается, когда дата отклонена политикой:
	// горизонт бронирования или праздник
	ErrDateNotBookable = errors.New("create_appointment: date is not bookable")

	// ErrTooLateToBook возвращается, когда слот нарушает минимальное
	// время уведомления
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда слот занят на момент коммита
	// Гонка показа и записи закрывается повторной проверкой в транзакции
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
