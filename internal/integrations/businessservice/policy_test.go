package businessservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
)

func TestResolvePolicy(t *testing.T) {
	tests := []struct {
		name             string
		business         Business
		wantNoticeHours  int
		wantMonths       int
		wantInterval     int
		wantBuffer       int
	}{
		{
			name:            "all defaults on empty catalog",
			business:        Business{ID: 1},
			wantNoticeHours: 24,
			wantMonths:      3,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "policy document wins over legacy field",
			business: Business{
				ID:                    1,
				MinBookingNoticeHours: ptr.Ptr(48),
				BookingPolicy: &PolicyDoc{
					MinNoticeHours: ptr.Ptr(12),
				},
			},
			wantNoticeHours: 12,
			wantMonths:      3,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "legacy notice field fills a silent policy document",
			business: Business{
				ID:                    1,
				MinBookingNoticeHours: ptr.Ptr(48),
				BookingPolicy:         &PolicyDoc{},
			},
			wantNoticeHours: 48,
			wantMonths:      3,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "legacy advance days convert to months",
			business: Business{
				ID: 1,
				BookingPolicy: &PolicyDoc{
					MaxAdvanceDays: ptr.Ptr(60),
				},
			},
			wantNoticeHours: 24,
			wantMonths:      2,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "short legacy horizon rounds up to a month",
			business: Business{
				ID: 1,
				BookingPolicy: &PolicyDoc{
					MaxAdvanceDays: ptr.Ptr(14),
				},
			},
			wantNoticeHours: 24,
			wantMonths:      1,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "legacy horizon past a month boundary rounds up",
			business: Business{
				ID: 1,
				BookingPolicy: &PolicyDoc{
					MaxAdvanceDays: ptr.Ptr(45),
				},
			},
			wantNoticeHours: 24,
			wantMonths:      2,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "months field wins over legacy days",
			business: Business{
				ID: 1,
				BookingPolicy: &PolicyDoc{
					MaxAdvanceMonths: ptr.Ptr(6),
					MaxAdvanceDays:   ptr.Ptr(60),
				},
			},
			wantNoticeHours: 24,
			wantMonths:      6,
			wantInterval:    15,
			wantBuffer:      0,
		},
		{
			name: "interval and buffer from policy document",
			business: Business{
				ID: 1,
				BookingPolicy: &PolicyDoc{
					SlotIntervalMinutes:  ptr.Ptr(30),
					DefaultBufferMinutes: ptr.Ptr(10),
				},
			},
			wantNoticeHours: 24,
			wantMonths:      3,
			wantInterval:    30,
			wantBuffer:      10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := ResolvePolicy(&tt.business)

			assert.Equal(t, tt.wantNoticeHours, policy.MinNoticeHours)
			assert.Equal(t, tt.wantMonths, policy.MaxAdvanceMonths)
			assert.Equal(t, tt.wantInterval, policy.IntervalMinutes)
			assert.Equal(t, tt.wantBuffer, policy.DefaultBufferMinutes)
		})
	}
}

func TestResolvePolicyHolidays(t *testing.T) {
	business := Business{
		ID:       1,
		Holidays: []string{"2024-12-25", "2025-01-01"},
	}

	policy := ResolvePolicy(&business)

	assert.True(t, policy.IsHoliday(time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.True(t, policy.IsHoliday(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, policy.IsHoliday(time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)))
}
