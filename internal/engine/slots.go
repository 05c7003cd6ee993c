package engine

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// SlotReason explains the decision for a single slot. Unavailability is a
// normal outcome, not a fault: the caller renders unavailable slots with
// their reason instead of hiding them.
type SlotReason string

const (
	// ReasonOK слот доступен
	ReasonOK SlotReason = "ok"
	// ReasonTooSoon слот раньше окна минимального уведомления
	ReasonTooSoon SlotReason = "too-soon"
	// ReasonNoStaff ни один сотрудник не проходит фильтр локации/услуг
	ReasonNoStaff SlotReason = "no-staff"
	// ReasonStaffUnavailable подходящие сотрудники есть, но все заняты записями
	ReasonStaffUnavailable SlotReason = "staff-unavailable"
	// ReasonBlocked слот закрыт расписанием: перерывы, блокировки, часы работы
	ReasonBlocked SlotReason = "blocked"
)

// SlotDecision is the engine's verdict for one candidate slot start.
// EligibleStaff lists the ids of staff passing every check, in the
// snapshot's original order; it feeds later assignment.
type SlotDecision struct {
	Start         timeofday.Minutes
	Available     bool
	Reason        SlotReason
	EligibleStaff []int64
}

// GenerateRequest is the full input for one slot-generation run.
type GenerateRequest struct {
	Date time.Time
	Now  time.Time
	Cart domain.ServiceCart

	// StaffID закрепленный сотрудник; nil — слоты по всем подходящим
	StaffID *int64

	Policy   domain.BookingPolicy
	Snapshot Snapshot
}

// GenerateResult carries the date-level decision and, when the date is
// bookable at all, one decision per slot step in ascending time order.
type GenerateResult struct {
	DateReason DateReason
	Slots      []SlotDecision
}

// GenerateSlots enumerates every candidate slot start for the date at the
// policy's granularity and decides each one. The walk composes the policy
// gate, the capability filter, the schedule resolver and the conflict
// detector; no step is ever skipped silently — unavailable slots are emitted
// with their reason. The walk never emits a start past close minus the
// cart's span: every candidate fits entirely inside the working window, so
// a shorter tail of the day yields fewer slots rather than truncated ones.
func GenerateSlots(req GenerateRequest) (*GenerateResult, error) {
	if req.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	// 1. Дата целиком: уведомление, горизонт, праздники.
	// При отказе пошаговый обход не выполняется вовсе.
	dateReason := EvaluateDate(req.Date, req.Now, req.Policy)
	if dateReason != DateOK {
		return &GenerateResult{DateReason: dateReason, Slots: []SlotDecision{}}, nil
	}

	// 2. Окно обхода: часы точки, при закрепленном сотруднике — пересечение
	// с его часами.
	day := timeofday.WeekdayOf(req.Date)

	var pinned *domain.StaffMember
	if req.StaffID != nil {
		for i := range req.Snapshot.Staff {
			if req.Snapshot.Staff[i].ID == *req.StaffID {
				pinned = &req.Snapshot.Staff[i]
				break
			}
		}
	}

	open, close, ok := StaffWindow(req.Snapshot.Location, pinned, day)
	if !ok {
		// Точка (или закрепленный сотрудник) в этот день не работает
		return &GenerateResult{DateReason: DateOK, Slots: []SlotDecision{}}, nil
	}

	// 3. Пул сотрудников: дешевые предикаты один раз на весь обход
	var eligible []domain.StaffMember
	if pinned != nil {
		eligible = EligibleStaff([]domain.StaffMember{*pinned}, req.Snapshot.Location.ID, req.Cart)
	} else {
		eligible = EligibleStaff(req.Snapshot.Staff, req.Snapshot.Location.ID, req.Cart)
	}

	minMinute, restricted := MinBookableMinute(req.Date, req.Now, req.Policy)

	span := req.Cart.Span()
	interval := req.Policy.Interval()

	slots := make([]SlotDecision, 0)
	for start := open; start.Add(span) <= close; start = start.Add(interval) {
		slots = append(slots, decideSlot(req, eligible, start, span, minMinute, restricted))
	}

	return &GenerateResult{DateReason: DateOK, Slots: slots}, nil
}

// decideSlot выносит решение по одному кандидату
func decideSlot(
	req GenerateRequest,
	eligible []domain.StaffMember,
	start timeofday.Minutes,
	span int,
	minMinute timeofday.Minutes,
	restricted bool,
) SlotDecision {
	if restricted && start < minMinute {
		return SlotDecision{Start: start, Reason: ReasonTooSoon}
	}

	if len(eligible) == 0 {
		return SlotDecision{Start: start, Reason: ReasonNoStaff}
	}

	passing := make([]int64, 0, len(eligible))
	anyFitsSchedule := false

	for i := range eligible {
		member := eligible[i]
		if !FitsSchedule(member, req.Snapshot.Location, req.Date, start, span, req.Snapshot.Blocked) {
			continue
		}
		anyFitsSchedule = true
		if HasConflict(member.ID, req.Date, start, span, req.Snapshot.Appointments, req.Policy.DefaultBufferMinutes) {
			continue
		}
		passing = append(passing, member.ID)
	}

	if len(passing) > 0 {
		return SlotDecision{Start: start, Available: true, Reason: ReasonOK, EligibleStaff: passing}
	}
	if anyFitsSchedule {
		// Расписание позволяет, но все подходящие сотрудники заняты записями
		return SlotDecision{Start: start, Reason: ReasonStaffUnavailable}
	}
	return SlotDecision{Start: start, Reason: ReasonBlocked}
}

// CheckStaffSlot re-validates one concrete (staff, date, start) candidate
// against a snapshot. It is the commit-time counterpart of the per-slot walk:
// the persistence boundary re-runs it on the latest rows inside a
// serializable transaction before writing, closing the race between slot
// display and booking commit.
func CheckStaffSlot(
	staff domain.StaffMember,
	snapshot Snapshot,
	date time.Time,
	start timeofday.Minutes,
	spanMinutes int,
	defaultBufferMinutes int,
) SlotReason {
	if !FitsSchedule(staff, snapshot.Location, date, start, spanMinutes, snapshot.Blocked) {
		return ReasonBlocked
	}
	if HasConflict(staff.ID, date, start, spanMinutes, snapshot.Appointments, defaultBufferMinutes) {
		return ReasonStaffUnavailable
	}
	return ReasonOK
}
