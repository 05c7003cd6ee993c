package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/internal/engine"
	appointmentRepo "github.com/m04kA/SLN-AvailabilityService/internal/infra/storage/appointment"
	businessClient "github.com/m04kA/SLN-AvailabilityService/internal/integrations/businessservice"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockedRepo     BlockedTimeRepository
	businessClient  BusinessServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockedRepo BlockedTimeRepository,
	businessClient BusinessServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockedRepo:     blockedRepo,
		businessClient:  businessClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса записи
// Перенос проходит те же проверки, что и создание: гейт политики по новой
// дате и повторная проверка слота на свежих строках внутри сериализуемой
// транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, date=%s, time=%s, staff=%v",
		req.AppointmentID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем новое время начала
	startTime, err := timeofday.Parse(req.StartTime)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: invalid startTime %q: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Читаем запись, чтобы узнать бизнес и точку
	apt, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 5. Получаем каталог бизнеса
	business, err := uc.businessClient.GetBusiness(ctx, apt.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("RescheduleAppointment: business id=%d not found", apt.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get business id=%d: %v", apt.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 6. Переносить может клиент записи или менеджер бизнеса
	if apt.ClientID != req.UserID && !business.IsManager(req.UserID) {
		uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d", req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}

	// 7. Переносятся только ожидающие и подтвержденные записи
	if !apt.CanBeRescheduled() {
		uc.logger.Warn("RescheduleAppointment: appointment id=%d cannot be rescheduled, status=%s", req.AppointmentID, apt.Status)
		return nil, ErrCannotReschedule
	}

	locationDoc, ok := business.Location(apt.LocationID)
	if !ok {
		uc.logger.Error("RescheduleAppointment: location id=%d missing from business id=%d catalog", apt.LocationID, apt.BusinessID)
		return nil, fmt.Errorf("%w: location missing from catalog", ErrInternal)
	}

	location, err := locationDoc.ToDomain()
	if err != nil {
		uc.logger.Error("RescheduleAppointment: invalid location id=%d schedule: %v", apt.LocationID, err)
		return nil, fmt.Errorf("%w: invalid location schedule: %v", ErrInternal, err)
	}

	staff, err := business.StaffForLocation()
	if err != nil {
		uc.logger.Error("RescheduleAppointment: invalid staff schedule in business id=%d: %v", apt.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid staff schedule: %v", ErrInternal, err)
	}

	// 8. Разрешаем политику и проверяем новую дату
	policy := businessClient.ResolvePolicy(business)

	switch engine.EvaluateDate(req.Date, now, policy) {
	case engine.DateOK:
	case engine.DateTooSoon:
		uc.logger.Warn("RescheduleAppointment: date %s violates min notice", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, policy.MinNoticeHours)
	default:
		uc.logger.Warn("RescheduleAppointment: date %s is not bookable", req.Date.Format(domain.DateFormat))
		return nil, ErrDateNotBookable
	}

	if minMinute, restricted := engine.MinBookableMinute(req.Date, now, policy); restricted && startTime < minMinute {
		uc.logger.Warn("RescheduleAppointment: start %s is before min bookable time %s", startTime, minMinute)
		return nil, fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, policy.MinNoticeHours)
	}

	// 9. Кандидаты: новый сотрудник, прежний сотрудник или вся команда точки
	targetStaffID := req.StaffID
	if targetStaffID == nil {
		targetStaffID = apt.StaffID
	}

	var pool []domain.StaffMember
	if targetStaffID != nil {
		pinned, found := findStaff(staff, *targetStaffID)
		if !found {
			uc.logger.Warn("RescheduleAppointment: staff id=%d not found in business id=%d", *targetStaffID, apt.BusinessID)
			return nil, ErrStaffNotFound
		}
		pool = []domain.StaffMember{pinned}
	} else {
		pool = staff
	}

	// Перенос не меняет состав услуг, поэтому интервал берём из записи
	span := apt.DurationMinutes
	if apt.BufferMinutes != nil {
		span += *apt.BufferMinutes
	} else {
		span += policy.DefaultBufferMinutes
	}

	var assignedID int64

	// 10. Повторная проверка и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Перечитываем запись с блокировкой строки
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to re-read appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to re-read appointment: %v", ErrInternal, err)
		}

		// Статус мог измениться между чтением и транзакцией
		if !current.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d status changed to %s", req.AppointmentID, current.Status)
			return ErrCannotReschedule
		}

		// 10.2. Перечитываем записи новой даты с блокировкой (FOR UPDATE).
		// По всему бизнесу, без фильтра по точке: плавающий сотрудник
		// может быть занят записью в другой точке.
		filter := domain.AppointmentsFilter{
			BusinessID:      current.BusinessID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		blocked, err := uc.blockedRepo.GetForDate(txCtx, current.BusinessID, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get blocked times: %v", err)
			return fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
		}

		// 10.3. Сама переносимая запись конфликтом не считается
		snapshot := engine.Snapshot{
			Location:     location,
			Staff:        staff,
			Appointments: withoutAppointment(appointments, current.ID),
			Blocked:      blocked,
		}

		passing := make([]int64, 0, len(pool))
		for i := range pool {
			if !pool[i].Schedulable() || !pool[i].WorksAt(current.LocationID) {
				continue
			}
			reason := engine.CheckStaffSlot(pool[i], snapshot, req.Date, startTime, span, policy.DefaultBufferMinutes)
			if reason == engine.ReasonOK {
				passing = append(passing, pool[i].ID)
			}
		}

		assignedID, err = engine.AssignStaff(passing)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: slot %s on %s not available for appointment id=%d",
				startTime, req.Date.Format(domain.DateFormat), req.AppointmentID)
			return ErrSlotNotAvailable
		}

		// 10.4. Переносим запись
		if err := uc.appointmentRepo.Reschedule(txCtx, current.ID, req.Date, startTime, &assignedID); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully moved appointment id=%d to %s %s, staff=%d",
		req.AppointmentID, req.Date.Format(domain.DateFormat), startTime, assignedID)

	return &Response{
		ID:              apt.ID,
		BusinessID:      apt.BusinessID,
		LocationID:      apt.LocationID,
		StaffID:         assignedID,
		ClientID:        apt.ClientID,
		Date:            req.Date,
		StartTime:       startTime.String(),
		DurationMinutes: apt.DurationMinutes,
		Status:          string(apt.Status),
	}, nil
}

func findStaff(staff []domain.StaffMember, staffID int64) (domain.StaffMember, bool) {
	for i := range staff {
		if staff[i].ID == staffID {
			return staff[i], true
		}
	}
	return domain.StaffMember{}, false
}

func withoutAppointment(appointments []*domain.Appointment, excludeID int64) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt == nil || apt.ID == excludeID {
			continue
		}
		out = append(out, *apt)
	}
	return out
}
