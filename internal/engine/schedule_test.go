package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

func TestStaffWindowIntersection(t *testing.T) {
	location := testLocation(t) // 09:00–17:00

	// Часы сотрудника шире с одной стороны, уже с другой:
	// эффективное окно — пересечение 09:00–12:00
	staff := testStaff(t, 1)
	staff.Hours = allWeek(t, "08:00", "12:00")

	open, close, ok := StaffWindow(location, &staff, timeofday.Monday)
	assert.True(t, ok)
	assert.Equal(t, clock(t, "09:00"), open)
	assert.Equal(t, clock(t, "12:00"), close)
}

func TestStaffWindow(t *testing.T) {
	location := testLocation(t)

	t.Run("nil staff yields location hours", func(t *testing.T) {
		open, close, ok := StaffWindow(location, nil, timeofday.Monday)
		assert.True(t, ok)
		assert.Equal(t, clock(t, "09:00"), open)
		assert.Equal(t, clock(t, "17:00"), close)
	})

	t.Run("staff without entry falls back to location", func(t *testing.T) {
		staff := testStaff(t, 1)
		staff.Hours = nil
		open, close, ok := StaffWindow(location, &staff, timeofday.Monday)
		assert.True(t, ok)
		assert.Equal(t, clock(t, "09:00"), open)
		assert.Equal(t, clock(t, "17:00"), close)
	})

	t.Run("staff closed day wins over location hours", func(t *testing.T) {
		staff := testStaff(t, 1)
		staff.Hours[timeofday.Monday] = domain.DayHours{Closed: true}
		_, _, ok := StaffWindow(location, &staff, timeofday.Monday)
		assert.False(t, ok)
	})

	t.Run("location closed day wins over staff hours", func(t *testing.T) {
		closedLocation := testLocation(t)
		closedLocation.Hours[timeofday.Monday] = domain.DayHours{Closed: true}
		staff := testStaff(t, 1)
		_, _, ok := StaffWindow(closedLocation, &staff, timeofday.Monday)
		assert.False(t, ok)
	})

	t.Run("disjoint hours collapse to no window", func(t *testing.T) {
		staff := testStaff(t, 1)
		staff.Hours = allWeek(t, "18:00", "22:00")
		_, _, ok := StaffWindow(location, &staff, timeofday.Monday)
		assert.False(t, ok)
	})
}

func TestFitsSchedule(t *testing.T) {
	location := testLocation(t)
	staff := testStaff(t, 1)

	t.Run("inside window", func(t *testing.T) {
		assert.True(t, FitsSchedule(staff, location, testDate, clock(t, "10:00"), 60, nil))
	})

	t.Run("before open", func(t *testing.T) {
		assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "08:00"), 60, nil))
	})

	t.Run("span runs past close", func(t *testing.T) {
		assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "16:30"), 60, nil))
	})

	t.Run("span ends exactly at close", func(t *testing.T) {
		assert.True(t, FitsSchedule(staff, location, testDate, clock(t, "16:00"), 60, nil))
	})
}

func TestFitsScheduleBreaks(t *testing.T) {
	location := testLocation(t)
	staff := testStaff(t, 1)
	staff.Breaks = []domain.Break{
		{Day: timeofday.Monday, Start: clock(t, "13:00"), End: clock(t, "14:00")},
	}

	// Пересечение с перерывом в любом месте интервала отклоняется
	assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "12:30"), 60, nil))
	assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "13:30"), 60, nil))

	// Полуоткрытые интервалы: впритык к перерыву — не пересечение
	assert.True(t, FitsSchedule(staff, location, testDate, clock(t, "12:00"), 60, nil))
	assert.True(t, FitsSchedule(staff, location, testDate, clock(t, "14:00"), 60, nil))

	// Перерыв другого дня недели не действует
	tuesday := testDate.AddDate(0, 0, 1)
	assert.True(t, FitsSchedule(staff, location, tuesday, clock(t, "13:00"), 60, nil))
}

func TestFitsScheduleBlockedRanges(t *testing.T) {
	location := testLocation(t)
	staff := testStaff(t, 1)

	blockedForAll := []domain.BlockedTimeRange{{
		ID:          1,
		BusinessID:  1,
		StaffID:     nil, // вся команда
		StartDate:   testDate,
		EndDate:     testDate,
		StartMinute: clock(t, "12:00"),
		EndMinute:   clock(t, "13:00"),
	}}

	t.Run("all-staff range blocks everyone", func(t *testing.T) {
		assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "12:00"), 60, blockedForAll))
		other := testStaff(t, 2)
		assert.False(t, FitsSchedule(other, location, testDate, clock(t, "12:30"), 60, blockedForAll))
	})

	t.Run("targeted range blocks only its staff", func(t *testing.T) {
		targeted := []domain.BlockedTimeRange{{
			ID:          2,
			StaffID:     ptr.Ptr(int64(1)),
			StartDate:   testDate,
			EndDate:     testDate,
			StartMinute: clock(t, "10:00"),
			EndMinute:   clock(t, "11:00"),
		}}
		assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "10:00"), 60, targeted))
		other := testStaff(t, 2)
		assert.True(t, FitsSchedule(other, location, testDate, clock(t, "10:00"), 60, targeted))
	})

	t.Run("multi-day range covers every day inclusively", func(t *testing.T) {
		vacation := []domain.BlockedTimeRange{{
			ID:          3,
			StaffID:     ptr.Ptr(int64(1)),
			StartDate:   testDate,
			EndDate:     testDate.AddDate(0, 0, 2),
			StartMinute: clock(t, "09:00"),
			EndMinute:   clock(t, "17:00"),
		}}
		for offset := 0; offset <= 2; offset++ {
			date := testDate.AddDate(0, 0, offset)
			assert.False(t, FitsSchedule(staff, location, date, clock(t, "10:00"), 60, vacation),
				"day offset %d must be blocked", offset)
		}
		dayAfter := testDate.AddDate(0, 0, 3)
		assert.True(t, FitsSchedule(staff, location, dayAfter, clock(t, "10:00"), 60, vacation))
	})
}

func TestFitsScheduleNoSlotOutsideIntersection(t *testing.T) {
	// Часы точки 09:00–17:00, часы сотрудника 08:00–12:00:
	// ни один слот вне 09:00–12:00 не проходит
	location := testLocation(t)
	staff := testStaff(t, 1)
	staff.Hours = allWeek(t, "08:00", "12:00")

	assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "08:00"), 60, nil))
	assert.True(t, FitsSchedule(staff, location, testDate, clock(t, "09:00"), 60, nil))
	assert.True(t, FitsSchedule(staff, location, testDate, clock(t, "11:00"), 60, nil))
	assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "11:15"), 60, nil))
	assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "12:00"), 60, nil))
}

func TestFitsScheduleClosedDay(t *testing.T) {
	location := testLocation(t)
	location.Hours[timeofday.Monday] = domain.DayHours{Closed: true}
	staff := testStaff(t, 1)

	assert.False(t, FitsSchedule(staff, location, testDate, clock(t, "10:00"), 60, nil))
}
