package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// Понедельник
var testDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func clock(t *testing.T, s string) timeofday.Minutes {
	t.Helper()
	m, err := timeofday.Parse(s)
	require.NoError(t, err)
	return m
}

// allWeek расписание с одинаковыми часами на все дни недели
func allWeek(t *testing.T, open, close string) domain.WeekSchedule {
	t.Helper()
	schedule := make(domain.WeekSchedule, 7)
	for _, day := range []timeofday.Weekday{
		timeofday.Monday, timeofday.Tuesday, timeofday.Wednesday,
		timeofday.Thursday, timeofday.Friday, timeofday.Saturday, timeofday.Sunday,
	} {
		schedule[day] = domain.DayHours{Open: clock(t, open), Close: clock(t, close)}
	}
	return schedule
}

func testLocation(t *testing.T) domain.Location {
	t.Helper()
	return domain.Location{ID: 1, Name: "Downtown", Hours: allWeek(t, "09:00", "17:00")}
}

func testStaff(t *testing.T, id int64) domain.StaffMember {
	t.Helper()
	return domain.StaffMember{
		ID:          id,
		Name:        "Staff",
		Hours:       allWeek(t, "09:00", "17:00"),
		AllServices: true,
		Active:      true,
	}
}

func testCart(durations ...int) domain.ServiceCart {
	cart := make(domain.ServiceCart, 0, len(durations))
	for i, d := range durations {
		cart = append(cart, domain.Service{ID: int64(i + 1), Name: "Service", DurationMinutes: d})
	}
	return cart
}

func confirmedAppointment(staffID int64, date time.Time, start timeofday.Minutes, duration int) domain.Appointment {
	return domain.Appointment{
		ID:              100,
		BusinessID:      1,
		LocationID:      1,
		StaffID:         ptr.Ptr(staffID),
		ClientID:        7,
		Date:            date,
		StartTime:       start,
		DurationMinutes: duration,
		BufferMinutes:   ptr.Ptr(0),
		Status:          domain.StatusConfirmed,
	}
}
