package domain

import "time"

// BookingPolicy is the fully resolved booking policy the engine consumes.
// Legacy field fallbacks (minBookingNoticeHours, maxAdvanceBookingDays) are
// resolved by the businessservice adapter before this type is constructed;
// the engine itself only ever sees one value per knob.
type BookingPolicy struct {
	MinNoticeHours   int
	MaxAdvanceMonths int
	IntervalMinutes  int

	// DefaultBufferMinutes дефолтный буфер бизнеса; применяется к
	// легаси-записям без собственного буфера
	DefaultBufferMinutes int

	// Holidays календарные дни, полностью исключенные из бронирования,
	// в формате DateFormat
	Holidays map[string]struct{}
}

// IsHoliday reports whether the calendar date is fully excluded.
func (p BookingPolicy) IsHoliday(date time.Time) bool {
	if len(p.Holidays) == 0 {
		return false
	}
	_, ok := p.Holidays[date.Format(DateFormat)]
	return ok
}

// Interval returns the slot granularity, falling back to the default.
func (p BookingPolicy) Interval() int {
	if p.IntervalMinutes <= 0 {
		return DefaultSlotIntervalMinutes
	}
	return p.IntervalMinutes
}
