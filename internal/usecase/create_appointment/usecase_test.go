package create_appointment

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
	created      *domain.Appointment
}

func (s *stubAppointmentRepo) Create(_ context.Context, apt *domain.Appointment) (*domain.Appointment, error) {
	apt.ID = 42
	apt.CreatedAt = testDate
	apt.UpdatedAt = testDate
	s.created = apt
	return apt, nil
}

func (s *stubAppointmentRepo) GetByBusinessWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	// Фильтр по точке применяется как в реальном репозитории
	out := make([]*domain.Appointment, 0, len(s.appointments))
	for _, apt := range s.appointments {
		if filter.LocationID != nil && apt.LocationID != *filter.LocationID {
			continue
		}
		out = append(out, apt)
	}
	return out, nil
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

type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
			{ID: 2, Name: "Dana", Services: businessClient.StaffServices{IDs: []int64{100}}, Active: true},
		},
		Services: []businessClient.Service{
			{ID: 100, Name: "Haircut", DurationMinutes: 60, Price: 50},
			{ID: 101, Name: "Coloring", DurationMinutes: 45, BufferMinutes: 15, Price: 120},
		},
	}
}

func newTestUseCase(repo *stubAppointmentRepo, business *businessClient.Business, now time.Time) *UseCase {
	uc := NewUseCase(repo, &stubBlockedRepo{}, &stubBusinessClient{business: business}, stubTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:   7,
		BusinessID: 1,
		LocationID: 10,
		ServiceIDs: []int64{100},
		Date:       testDate,
		StartTime:  "10:00",
	}
}

func TestExecuteCreatesAppointment(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceNames)
	assert.Equal(t, 50.0, resp.TotalPrice)

	// Назначение: первый подходящий в порядке каталога
	assert.Equal(t, int64(1), resp.StaffID)

	require.NotNil(t, repo.created)
	require.NotNil(t, repo.created.BufferMinutes)
	assert.Equal(t, 0, *repo.created.BufferMinutes)
}

func TestExecuteMultiServiceCart(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.ServiceIDs = []int64{100, 101}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Длительности складываются, буфер — максимум по корзине
	assert.Equal(t, 105, resp.DurationMinutes)
	assert.Equal(t, 15, resp.BufferMinutes)
	assert.Equal(t, "Haircut, Coloring", resp.ServiceNames)
	assert.Equal(t, 170.0, resp.TotalPrice)
}

func TestExecuteAcceptsTwelveHourClock(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.StartTime = "10:00 AM"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestExecuteSlotTaken(t *testing.T) {
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

	business := testBusiness()
	// Оставляем одного сотрудника, способного выполнить услугу
	business.Staff = business.Staff[:1]

	uc := newTestUseCase(repo, business, testDate.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteFloatingStaffBusyAtOtherLocation(t *testing.T) {
	// Сотрудник без закрепления за точкой занят записью в другой точке
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

	uc := newTestUseCase(repo, business, testDate.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteFallsBackToFreeStaff(t *testing.T) {
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

	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Первый занят — запись уходит второму подходящему
	assert.Equal(t, int64(2), resp.StaffID)
}

func TestExecutePinnedStaff(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.StaffID = ptr.Ptr(int64(2))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.StaffID)
}

func TestExecutePinnedStaffNotEligible(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	// Второй сотрудник умеет только услугу 100
	req := validRequest()
	req.ServiceIDs = []int64{101}
	req.StaffID = ptr.Ptr(int64(2))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecutePinnedStaffUnknown(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.StaffID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecuteTooLateToBook(t *testing.T) {
	business := testBusiness()
	business.BookingPolicy.MinNoticeHours = ptr.Ptr(24)

	repo := &stubAppointmentRepo{}
	// Сейчас 2024-06-03 09:00, запись на 2024-06-04 08:00 — раньше окна уведомления
	uc := newTestUseCase(repo, business, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))

	req := validRequest()
	req.Date = testDate.AddDate(0, 0, 1)
	req.StartTime = "08:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecuteHoliday(t *testing.T) {
	business := testBusiness()
	business.Holidays = []string{"2024-06-03"}

	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, business, testDate.AddDate(0, 0, -7))

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDateNotBookable)
}

func TestExecuteBusinessNotFound(t *testing.T) {
	uc := NewUseCase(
		&stubAppointmentRepo{},
		&stubBlockedRepo{},
		&stubBusinessClient{err: businessClient.ErrBusinessNotFound},
		stubTxManager{},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: testDate.AddDate(0, 0, -7)}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecuteUnknownService(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	req := validRequest()
	req.ServiceIDs = []int64{999}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteValidation(t *testing.T) {
	repo := &stubAppointmentRepo{}
	uc := newTestUseCase(repo, testBusiness(), testDate.AddDate(0, 0, -7))

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing client", mutate: func(r *Request) { r.ClientID = 0 }},
		{name: "missing services", mutate: func(r *Request) { r.ServiceIDs = nil }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "bad staff id", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(-1)) }},
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
