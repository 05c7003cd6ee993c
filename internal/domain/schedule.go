package domain

import (
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// DayHours is one weekday's operating window. If Closed is true the
// Open/Close values are ignored.
type DayHours struct {
	Open   timeofday.Minutes
	Close  timeofday.Minutes
	Closed bool
}

// WeekSchedule maps weekday keys to operating hours.
type WeekSchedule map[timeofday.Weekday]DayHours

// Hours returns the hours for the given weekday. Missing entries count as
// a closed day.
func (s WeekSchedule) Hours(day timeofday.Weekday) DayHours {
	if s == nil {
		return DayHours{Closed: true}
	}
	hours, ok := s[day]
	if !ok {
		return DayHours{Closed: true}
	}
	return hours
}

// Lookup returns the hours for the given weekday and whether an entry
// exists at all. A missing entry is not the same as a closed day: staff
// schedules fall back to the location's hours for days they carry no entry
// for, while an explicit Closed entry keeps the staff member off that day.
func (s WeekSchedule) Lookup(day timeofday.Weekday) (DayHours, bool) {
	if s == nil {
		return DayHours{}, false
	}
	hours, ok := s[day]
	return hours, ok
}

// Break is a recurring weekly break in a staff member's schedule.
type Break struct {
	Day   timeofday.Weekday
	Start timeofday.Minutes
	End   timeofday.Minutes
}
