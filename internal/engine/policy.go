package engine

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// DateReason explains why a calendar date is or is not bookable at all.
// The UI renders a specific message per reason, so a bare boolean is not
// enough.
type DateReason string

const (
	DateOK      DateReason = "ok"
	DateTooSoon DateReason = "too-soon"
	DateTooFar  DateReason = "too-far"
	DateHoliday DateReason = "holiday"
)

// EvaluateDate решает, доступна ли дата для бронирования в принципе:
// окно минимального уведомления, окно максимального горизонта и праздники.
//
// Дата отклоняется как too-soon, только если ВЕСЬ день заканчивается раньше
// минимального момента бронирования; частично доступный день пропускается
// дальше, а отсечка ранних слотов происходит в генераторе.
func EvaluateDate(date, now time.Time, policy domain.BookingPolicy) DateReason {
	if policy.IsHoliday(date) {
		return DateHoliday
	}

	minBookable := minBookableInstant(now, policy)
	dayEnd := dayStart(date).AddDate(0, 0, 1)
	if !dayEnd.After(minBookable) {
		return DateTooSoon
	}

	// Горизонт считается календарными месяцами, без конвертации в 30-дневный
	// множитель: легаси-поле в днях приводится к месяцам адаптером политики.
	months := policy.MaxAdvanceMonths
	if months <= 0 {
		months = domain.DefaultMaxAdvanceMonths
	}
	maxBookable := dayStart(now).AddDate(0, months, 0)
	if dayStart(date).After(maxBookable) {
		return DateTooFar
	}

	return DateOK
}

// MinBookableMinute returns the first bookable minute on the given date and
// whether the notice window restricts that date at all. Dates fully past the
// notice window return (0, false); the fully-restricted case is already
// rejected by EvaluateDate.
func MinBookableMinute(date, now time.Time, policy domain.BookingPolicy) (timeofday.Minutes, bool) {
	minBookable := minBookableInstant(now, policy)
	if !sameDay(date, minBookable) {
		return 0, false
	}
	minute := timeofday.FromTime(minBookable)
	// Секунды округляются вверх до следующей минуты
	if minBookable.Second() > 0 || minBookable.Nanosecond() > 0 {
		minute++
	}
	return minute, true
}

func minBookableInstant(now time.Time, policy domain.BookingPolicy) time.Time {
	return now.Add(time.Duration(policy.MinNoticeHours) * time.Hour)
}
