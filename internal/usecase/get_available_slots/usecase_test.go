package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	businessClient "github.com/m04kA/SLN-AvailabilityService/internal/integrations/businessservice"
	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// Понедельник
var testDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
	lastFilter   domain.AppointmentsFilter
}

func (s *stubAppointmentRepo) GetByBusinessWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	s.lastFilter = filter
	return s.appointments, nil
}

type stubBlockedRepo struct {
	blocked []domain.BlockedTimeRange
}

func (s *stubBlockedRepo) GetForDate(_ context.Context, _ int64, _ time.Time) ([]domain.BlockedTimeRange, error) {
	return s.blocked, nil
}

type stubBusinessClient struct {
	business *businessClient.Business
	err      error
}

func (s *stubBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessClient.Business, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.business, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fullWeekHours(open, close string) map[string]businessClient.DayDoc {
	hours := make(map[string]businessClient.DayDoc, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = businessClient.DayDoc{Open: open, Close: close}
	}
	return hours
}

func testBusiness() *businessClient.Business {
	return &businessClient.Business{
		ID: 1,
		BookingPolicy: &businessClient.PolicyDoc{
			MinNoticeHours:      ptr.Ptr(0),
			SlotIntervalMinutes: ptr.Ptr(15),
		},
		Locations: []businessClient.Location{
			{ID: 10, Name: "Downtown", Hours: fullWeekHours("09:00", "17:00")},
		},
		Staff: []businessClient.StaffMember{
			{ID: 1, Name: "Alex", Services: businessClient.StaffServices{All: true}, Active: true},
		},
		Services: []businessClient.Service{
			{ID: 100, Name: "Haircut", DurationMinutes: 60, Price: 50},
		},
	}
}

func newTestUseCase(repo *stubAppointmentRepo, blocked *stubBlockedRepo, business *businessClient.Business, now time.Time) *UseCase {
	uc := NewUseCase(repo, blocked, &stubBusinessClient{business: business}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		BusinessID: 1,
		LocationID: 10,
		ServiceIDs: []int64{100},
		Date:       testDate,
	}
}

func TestExecuteOpenDay(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-03", resp.Date)
	assert.Equal(t, "ok", resp.DateReason)

	// 09:00–17:00, услуга на 60 минут, шаг 15: последний старт 16:00
	require.Len(t, resp.Slots, 29)
	first := resp.Slots[0]
	assert.Equal(t, "09:00", first.StartTime)
	assert.Equal(t, "9:00 AM", first.StartTimeDisplay)
	assert.Equal(t, 60, first.DurationMinutes)
	assert.True(t, first.Available)
	assert.Equal(t, []int64{1}, first.EligibleStaffIDs)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, "16:00", last.StartTime)
	assert.True(t, last.Available)
}

func TestExecuteFilterScopedToDay(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Снимок дня: записи всего бизнеса за одну дату, без неактивных.
	// Без фильтра по точке: занятость плавающего сотрудника в другой
	// точке тоже должна попасть в снимок.
	assert.Nil(t, repo.lastFilter.LocationID)
	require.NotNil(t, repo.lastFilter.StartDate)
	require.NotNil(t, repo.lastFilter.EndDate)
	assert.True(t, repo.lastFilter.StartDate.Equal(testDate))
	assert.True(t, repo.lastFilter.EndDate.Equal(testDate))
	assert.False(t, repo.lastFilter.IncludeInactive)
}

func TestExecuteBusySlotsMarkedUnavailable(t *testing.T) {
	staffID := int64(1)
	repo := &stubAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:              5,
			BusinessID:      1,
			LocationID:      10,
			StaffID:         &staffID,
			Date:            testDate,
			StartTime:       timeofday.Minutes(10 * 60),
			DurationMinutes: 60,
			BufferMinutes:   ptr.Ptr(0),
			Status:          domain.StatusConfirmed,
		}},
	}
	uc := newTestUseCase(repo, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	byStart := make(map[string]Slot, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot
	}

	// Недоступные слоты возвращаются с причиной, а не скрываются
	busy := byStart["10:00"]
	assert.False(t, busy.Available)
	assert.Equal(t, "staff-unavailable", busy.Reason)
	assert.Empty(t, busy.EligibleStaffIDs)

	// Запись 10:00–11:00 задевает старты с 09:15
	assert.False(t, byStart["09:15"].Available)
	assert.True(t, byStart["09:00"].Available)
	assert.True(t, byStart["11:00"].Available)
}

func TestExecuteFloatingStaffBusyAtOtherLocation(t *testing.T) {
	// Сотрудник без закрепления за точкой занят записью в другой точке:
	// слот в запрошенной точке тоже недоступен
	staffID := int64(1)
	repo := &stubAppointmentRepo{
		appointments: []*domain.Appointment{{
			ID:              5,
			BusinessID:      1,
			LocationID:      20,
			StaffID:         &staffID,
			Date:            testDate,
			StartTime:       timeofday.Minutes(10 * 60),
			DurationMinutes: 60,
			BufferMinutes:   ptr.Ptr(0),
			Status:          domain.StatusConfirmed,
		}},
	}

	business := testBusiness()
	business.Locations = append(business.Locations, businessClient.Location{
		ID: 20, Name: "Uptown", Hours: fullWeekHours("09:00", "17:00"),
	})
	business.Staff = business.Staff[:1]

	uc := newTestUseCase(repo, &stubBlockedRepo{}, business, testDate.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	byStart := make(map[string]Slot, len(resp.Slots))
	for _, slot := range resp.Slots {
		byStart[slot.StartTime] = slot
	}

	assert.False(t, byStart["10:00"].Available)
	assert.Equal(t, "staff-unavailable", byStart["10:00"].Reason)
	assert.True(t, byStart["11:00"].Available)
}

func TestExecuteHoliday(t *testing.T) {
	business := testBusiness()
	business.Holidays = []string{"2024-06-03"}

	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockedRepo{}, business, testDate.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "holiday", resp.DateReason)
	assert.Empty(t, resp.Slots)
}

func TestExecutePinnedStaffUnknown(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.StaffID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecuteBusinessNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubAppointmentRepo{},
		&stubBlockedRepo{},
		&stubBusinessClient{err: businessClient.ErrBusinessNotFound},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: testDate.AddDate(0, 0, -7)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecuteUnknownLocation(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.LocationID = 77

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestExecuteUnknownService(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.ServiceIDs = []int64{999}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&stubAppointmentRepo{}, &stubBlockedRepo{}, testBusiness(), testDate.AddDate(0, 0, -7))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing business", mutate: func(r *Request) { r.BusinessID = 0 }},
		{name: "missing services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "bad staff id", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(0)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
