package engine

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// StaffWindow computes the effective working window for one staff member on
// one weekday. When both the location's hours and the staff member's own
// hours apply, the window is the intersection: a staff member is never
// bookable outside the location's opening hours even if their personal hours
// are wider. A nil staff member (any-staff slot generation) yields the
// location's hours as is; a staff member without an entry for the day falls
// back to the location's hours.
func StaffWindow(location domain.Location, staff *domain.StaffMember, day timeofday.Weekday) (open, close timeofday.Minutes, ok bool) {
	locHours := location.Hours.Hours(day)
	if locHours.Closed {
		return 0, 0, false
	}

	if staff == nil {
		return locHours.Open, locHours.Close, true
	}

	staffHours, found := staff.Hours.Lookup(day)
	if !found {
		// Нет собственного расписания на этот день — наследуем часы точки
		return locHours.Open, locHours.Close, true
	}
	if staffHours.Closed {
		return 0, 0, false
	}

	open = locHours.Open
	if staffHours.Open > open {
		open = staffHours.Open
	}
	close = locHours.Close
	if staffHours.Close < close {
		close = staffHours.Close
	}
	if open >= close {
		return 0, 0, false
	}

	return open, close, true
}

// FitsSchedule decides whether a candidate slot start fits one staff
// member's static schedule data for the date: inside the effective working
// window, clear of breaks, clear of blocked-time ranges. Existing
// appointments are dynamic data and deliberately not checked here — that is
// HasConflict's job, with its own failure reporting.
func FitsSchedule(
	staff domain.StaffMember,
	location domain.Location,
	date time.Time,
	slotStart timeofday.Minutes,
	spanMinutes int,
	blocked []domain.BlockedTimeRange,
) bool {
	day := timeofday.WeekdayOf(date)

	open, close, ok := StaffWindow(location, &staff, day)
	if !ok {
		return false
	}

	slotEnd := slotStart.Add(spanMinutes)
	if slotStart < open || slotEnd > close {
		return false
	}

	// Перерывы сотрудника в этот день недели
	for _, brk := range staff.Breaks {
		if brk.Day != day {
			continue
		}
		if timeofday.Overlaps(slotStart, slotEnd, brk.Start, brk.End) {
			return false
		}
	}

	// Блокировки времени: адресные и общие ("all")
	for _, rng := range blocked {
		if !rng.AppliesToStaff(staff.ID) {
			continue
		}
		if !rng.CoversDate(date) {
			continue
		}
		if timeofday.Overlaps(slotStart, slotEnd, rng.StartMinute, rng.EndMinute) {
			return false
		}
	}

	return true
}
