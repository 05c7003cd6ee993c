package businessservice

import (
	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
)

// ResolvePolicy сводит дублирующиеся поля каталога к одной политике.
// Порядок приоритетов фиксированный:
//
//	minNoticeHours:   bookingPolicy.minNoticeHours -> minBookingNoticeHours -> 24
//	maxAdvanceMonths: bookingPolicy.maxAdvanceMonths -> maxAdvanceDays/30 (вверх) -> 3
//	interval:         bookingPolicy.slotIntervalMinutes -> 15
//	defaultBuffer:    bookingPolicy.defaultBufferMinutes -> 0
//
// Движок расчёта слотов видит только результат и ничего не знает про
// легаси-поля.
func ResolvePolicy(b *Business) domain.BookingPolicy {
	policy := domain.BookingPolicy{
		MinNoticeHours:       domain.DefaultMinNoticeHours,
		MaxAdvanceMonths:     domain.DefaultMaxAdvanceMonths,
		IntervalMinutes:      domain.DefaultSlotIntervalMinutes,
		DefaultBufferMinutes: domain.DefaultServiceBufferMinutes,
	}

	if b.MinBookingNoticeHours != nil {
		policy.MinNoticeHours = *b.MinBookingNoticeHours
	}

	if doc := b.BookingPolicy; doc != nil {
		if doc.MinNoticeHours != nil {
			policy.MinNoticeHours = *doc.MinNoticeHours
		}
		if doc.MaxAdvanceDays != nil {
			// Легаси-горизонт в днях конвертируется с округлением вверх:
			// горизонт короче месяца не должен превращаться в 0 месяцев,
			// то есть в дефолтный
			policy.MaxAdvanceMonths = (*doc.MaxAdvanceDays + domain.LegacyDaysPerMonth - 1) / domain.LegacyDaysPerMonth
		}
		if doc.MaxAdvanceMonths != nil {
			policy.MaxAdvanceMonths = *doc.MaxAdvanceMonths
		}
		if doc.SlotIntervalMinutes != nil {
			policy.IntervalMinutes = *doc.SlotIntervalMinutes
		}
		if doc.DefaultBufferMinutes != nil {
			policy.DefaultBufferMinutes = *doc.DefaultBufferMinutes
		}
	}

	if len(b.Holidays) > 0 {
		policy.Holidays = make(map[string]struct{}, len(b.Holidays))
		for _, day := range b.Holidays {
			policy.Holidays[day] = struct{}{}
		}
	}

	return policy
}
