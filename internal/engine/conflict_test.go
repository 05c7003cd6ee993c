package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
)

func TestHasConflict(t *testing.T) {
	existing := []domain.Appointment{
		confirmedAppointment(1, testDate, clock(t, "10:00"), 60),
	}

	tests := []struct {
		name     string
		staffID  int64
		start    string
		span     int
		expected bool
	}{
		{name: "overlap from the left", staffID: 1, start: "09:30", span: 60, expected: true},
		{name: "overlap from the right", staffID: 1, start: "10:30", span: 60, expected: true},
		{name: "candidate contains appointment", staffID: 1, start: "09:30", span: 120, expected: true},
		{name: "appointment contains candidate", staffID: 1, start: "10:15", span: 15, expected: true},
		{name: "ends exactly at appointment start", staffID: 1, start: "09:00", span: 60, expected: false},
		{name: "starts exactly at appointment end", staffID: 1, start: "11:00", span: 60, expected: false},
		{name: "other staff unaffected", staffID: 2, start: "10:00", span: 60, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasConflict(tt.staffID, testDate, clock(t, tt.start), tt.span, existing, 0)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHasConflictStatusFilter(t *testing.T) {
	makeWithStatus := func(status domain.AppointmentStatus) []domain.Appointment {
		apt := confirmedAppointment(1, testDate, clock(t, "10:00"), 60)
		apt.Status = status
		return []domain.Appointment{apt}
	}

	// Слот блокируют только подтвержденные и ожидающие записи
	assert.True(t, HasConflict(1, testDate, clock(t, "10:00"), 60, makeWithStatus(domain.StatusConfirmed), 0))
	assert.True(t, HasConflict(1, testDate, clock(t, "10:00"), 60, makeWithStatus(domain.StatusPending), 0))

	for _, status := range []domain.AppointmentStatus{
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusDidNotShow,
		domain.StatusArrived,
		domain.StatusStarted,
	} {
		assert.False(t, HasConflict(1, testDate, clock(t, "10:00"), 60, makeWithStatus(status), 0),
			"status %s must not block", status)
	}
}

func TestHasConflictBuffer(t *testing.T) {
	t.Run("recorded buffer extends the occupied interval", func(t *testing.T) {
		apt := confirmedAppointment(1, testDate, clock(t, "10:00"), 60)
		apt.BufferMinutes = ptr.Ptr(15)
		existing := []domain.Appointment{apt}

		// Занято [10:00, 11:15): 11:00 конфликтует, 11:15 — нет
		assert.True(t, HasConflict(1, testDate, clock(t, "11:00"), 60, existing, 0))
		assert.False(t, HasConflict(1, testDate, clock(t, "11:15"), 60, existing, 0))
	})

	t.Run("missing buffer falls back to business default", func(t *testing.T) {
		apt := confirmedAppointment(1, testDate, clock(t, "10:00"), 60)
		apt.BufferMinutes = nil
		existing := []domain.Appointment{apt}

		assert.True(t, HasConflict(1, testDate, clock(t, "11:00"), 60, existing, 30))
		assert.False(t, HasConflict(1, testDate, clock(t, "11:30"), 60, existing, 30))
	})

	t.Run("recorded zero buffer ignores default", func(t *testing.T) {
		apt := confirmedAppointment(1, testDate, clock(t, "10:00"), 60)
		existing := []domain.Appointment{apt}

		assert.False(t, HasConflict(1, testDate, clock(t, "11:00"), 60, existing, 30))
	})
}

func TestHasConflictDifferentDay(t *testing.T) {
	existing := []domain.Appointment{
		confirmedAppointment(1, testDate, clock(t, "10:00"), 60),
	}
	nextDay := testDate.AddDate(0, 0, 1)

	assert.False(t, HasConflict(1, nextDay, clock(t, "10:00"), 60, existing, 0))
}

func TestHasConflictUnassignedAppointment(t *testing.T) {
	apt := confirmedAppointment(1, testDate, clock(t, "10:00"), 60)
	apt.StaffID = nil
	existing := []domain.Appointment{apt}

	// Запись без назначенного сотрудника не относится ни к чьему времени
	assert.False(t, HasConflict(1, testDate, clock(t, "10:00"), 60, existing, 0))
}
