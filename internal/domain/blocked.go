package domain

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// BlockedTimeRange is an explicit schedule exclusion window, independent of
// appointments: vacations, training, maintenance. It removes any slot whose
// interval intersects [StartMinute, EndMinute) on any day of the inclusive
// [StartDate, EndDate] range.
type BlockedTimeRange struct {
	ID         int64
	BusinessID int64

	// StaffID nil — sentinel "all staff": блокирует время каждого сотрудника
	StaffID *int64

	StartDate time.Time // Включительно
	EndDate   time.Time // Включительно

	StartMinute timeofday.Minutes
	EndMinute   timeofday.Minutes

	Reason string

	CreatedAt time.Time
}

// AppliesToStaff reports whether the range targets the given staff member.
func (b *BlockedTimeRange) AppliesToStaff(staffID int64) bool {
	return b.StaffID == nil || *b.StaffID == staffID
}

// CoversDate reports whether the calendar date falls inside the inclusive
// day range.
func (b *BlockedTimeRange) CoversDate(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(b.StartDate)) && !day.After(truncateToDay(b.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
