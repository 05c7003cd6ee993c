package engine

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// HasConflict tests a candidate interval against one staff member's existing
// appointments. Each appointment occupies its own interval including its
// buffer; legacy appointments without a recorded buffer fall back to the
// business-wide default. The check runs per staff member independently —
// two different staff can legitimately hold overlapping appointments.
//
// Appointments without an assigned staff member are skipped: they cannot be
// attributed to anyone's time until assignment.
func HasConflict(
	staffID int64,
	date time.Time,
	slotStart timeofday.Minutes,
	spanMinutes int,
	appointments []domain.Appointment,
	defaultBufferMinutes int,
) bool {
	slotEnd := slotStart.Add(spanMinutes)

	for i := range appointments {
		apt := &appointments[i]

		if apt.StaffID == nil || *apt.StaffID != staffID {
			continue
		}
		if !sameDay(apt.Date, date) {
			continue
		}
		// Отменённые, завершённые и no-show записи слот не блокируют
		if !apt.BlocksSlot() {
			continue
		}

		aptStart, aptEnd := apt.OccupiedInterval(defaultBufferMinutes)
		if timeofday.Overlaps(slotStart, slotEnd, aptStart, aptEnd) {
			return true
		}
	}

	return false
}
