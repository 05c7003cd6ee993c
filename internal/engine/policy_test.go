package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

func TestEvaluateDate(t *testing.T) {
	// 2024-01-01 10:00 — понедельник
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		date   time.Time
		policy domain.BookingPolicy
		want   DateReason
	}{
		{
			name:   "same day rejected under 24h notice",
			date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3},
			want:   DateTooSoon,
		},
		{
			name:   "next day passes the gate, early slots cut per-slot",
			date:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3},
			want:   DateOK,
		},
		{
			name:   "zero notice allows today",
			date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{MinNoticeHours: 0, MaxAdvanceMonths: 3},
			want:   DateOK,
		},
		{
			name:   "within advance horizon",
			date:   time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3},
			want:   DateOK,
		},
		{
			name:   "calendar months, not 30-day multiples",
			date:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3},
			want:   DateOK,
		},
		{
			name:   "past advance horizon",
			date:   time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3},
			want:   DateTooFar,
		},
		{
			name: "holiday rejected regardless of windows",
			date: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			policy: domain.BookingPolicy{
				MinNoticeHours:   0,
				MaxAdvanceMonths: 3,
				Holidays:         map[string]struct{}{"2024-01-07": {}},
			},
			want: DateHoliday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateDate(tt.date, now, tt.policy))
		})
	}
}

func TestEvaluateDateMonotonicNotice(t *testing.T) {
	// Для фиксированного minNoticeHours дата становится доступной только
	// после того, как окно уведомления действительно истекло
	policy := domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3}
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	early := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, DateOK, EvaluateDate(date, early, policy))

	// Время идет вперед — дата не может снова стать "too soon"
	later := early.Add(6 * time.Hour)
	assert.Equal(t, DateOK, EvaluateDate(date, later, policy))

	// Но следующий день после даты делает её недоступной целиком
	dayAfter := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, DateTooSoon, EvaluateDate(date, dayAfter, policy))
}

func TestMinBookableMinute(t *testing.T) {
	policy := domain.BookingPolicy{MinNoticeHours: 24, MaxAdvanceMonths: 3}
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	// Дата совпадает с днем минимального момента — ограничение с 10:00
	minute, restricted := MinBookableMinute(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), now, policy)
	assert.True(t, restricted)
	assert.Equal(t, timeofday.Minutes(600), minute)

	// Дальше дня минимального момента ограничения нет
	_, restricted = MinBookableMinute(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), now, policy)
	assert.False(t, restricted)

	// Секунды округляются вверх
	nowWithSeconds := time.Date(2024, 1, 1, 10, 0, 30, 0, time.UTC)
	minute, restricted = MinBookableMinute(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), nowWithSeconds, policy)
	assert.True(t, restricted)
	assert.Equal(t, timeofday.Minutes(601), minute)
}
