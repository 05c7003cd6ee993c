package businessservice

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrLocationNotFound возвращается, когда точка не принадлежит бизнесу
	ErrLocationNotFound = errors.New("location not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("businessservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("businessservice client: invalid response")

	// ErrInvalidSchedule возвращается, когда каталог содержит время,
	// которое не удаётся нормализовать
	ErrInvalidSchedule = errors.New("businessservice client: invalid schedule data")
)
