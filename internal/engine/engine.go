// Package engine реализует чистый движок доступности и разрешения
// конфликтов: по снапшоту сущностей бизнеса и дате он вычисляет, какие
// слоты доступны, кто из сотрудников может их обслужить и конфликтует ли
// предлагаемая запись с существующими. Движок не выполняет I/O, ничего не
// кеширует и при одинаковых входах всегда возвращает одинаковый результат;
// загрузка снапшота и персистентность решений — ответственность вызывающего.
package engine

import (
	"errors"
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
)

var (
	// ErrEmptyCart возвращается при попытке посчитать слоты для пустой корзины услуг
	ErrEmptyCart = errors.New("engine: service cart is empty")

	// ErrNoEligibleStaff возвращается при назначении сотрудника на слот,
	// для которого не осталось ни одного подходящего сотрудника
	// (устаревший снапшот — гонка с другой записью)
	ErrNoEligibleStaff = errors.New("engine: no eligible staff for slot")
)

// Snapshot is the immutable view of a business's entities for one date.
// The caller fetches it once per date/selection change; the engine never
// re-reads or mutates it.
type Snapshot struct {
	Location     domain.Location
	Staff        []domain.StaffMember
	Appointments []domain.Appointment
	Blocked      []domain.BlockedTimeRange
}

// sameDay проверяет, что две даты относятся к одному календарному дню
func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// dayStart обнуляет время, оставляя только календарный день
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
