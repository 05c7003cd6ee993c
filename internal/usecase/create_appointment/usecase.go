package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/internal/engine"
	businessClient "github.com/m04kA/SLN-AvailabilityService/internal/integrations/businessservice"
	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// UseCase use case для создания записи
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

// Execute выполняет use case создания записи
// Слот, показанный клиенту, мог быть занят между показом и подтверждением,
// поэтому доступность перепроверяется внутри сериализуемой транзакции на
// свежих строках и только потом выполняется вставка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, business=%d, location=%d, services=%v, date=%s, time=%s",
		req.ClientID, req.BusinessID, req.LocationID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем время начала: принимаются оба формата ("10:00", "10:00 AM")
	startTime, err := timeofday.Parse(req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateAppointment: invalid startTime %q: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// 3. Получаем текущее время
	now := uc.timeProvider.Now()

	// 4. Получаем каталог бизнеса
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 5. Проверяем существование точки
	locationDoc, ok := business.Location(req.LocationID)
	if !ok {
		uc.logger.Warn("CreateAppointment: location id=%d not found in business id=%d", req.LocationID, req.BusinessID)
		return nil, ErrLocationNotFound
	}

	location, err := locationDoc.ToDomain()
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid location id=%d schedule: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: invalid location schedule: %v", ErrInternal, err)
	}

	// 6. Собираем корзину услуг
	cart, err := business.ServiceCart(req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, ErrServiceNotFound
	}

	// 7. Конвертируем сотрудников, порядок каталога сохраняется
	staff, err := business.StaffForLocation()
	if err != nil {
		uc.logger.Error("CreateAppointment: invalid staff schedule in business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid staff schedule: %v", ErrInternal, err)
	}

	// 8. Разрешаем политику бронирования
	policy := businessClient.ResolvePolicy(business)

	// 9. Гейт на уровне даты: горизонт, праздники, уведомление
	switch engine.EvaluateDate(req.Date, now, policy) {
	case engine.DateOK:
	case engine.DateTooSoon:
		uc.logger.Warn("CreateAppointment: date %s violates min notice", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, policy.MinNoticeHours)
	default:
		uc.logger.Warn("CreateAppointment: date %s is not bookable", req.Date.Format(domain.DateFormat))
		return nil, ErrDateNotBookable
	}

	// 10. Внутридневная проверка уведомления для граничной даты
	if minMinute, restricted := engine.MinBookableMinute(req.Date, now, policy); restricted && startTime < minMinute {
		uc.logger.Warn("CreateAppointment: start %s is before min bookable time %s", startTime, minMinute)
		return nil, fmt.Errorf("%w: must book at least %d hours in advance", ErrTooLateToBook, policy.MinNoticeHours)
	}

	// 11. Пул кандидатов: закрепленный сотрудник или все сотрудники точки
	pool := staff
	if req.StaffID != nil {
		pinned, found := findStaff(staff, *req.StaffID)
		if !found {
			uc.logger.Warn("CreateAppointment: staff id=%d not found in business id=%d", *req.StaffID, req.BusinessID)
			return nil, ErrStaffNotFound
		}
		pool = []domain.StaffMember{pinned}
	}

	eligible := engine.EligibleStaff(pool, req.LocationID, cart)
	if len(eligible) == 0 {
		if req.StaffID != nil {
			uc.logger.Warn("CreateAppointment: staff id=%d cannot perform services %v", *req.StaffID, req.ServiceIDs)
			return nil, ErrStaffNotEligible
		}
		uc.logger.Warn("CreateAppointment: no staff in business id=%d can perform services %v", req.BusinessID, req.ServiceIDs)
		return nil, ErrSlotNotAvailable
	}

	span := cart.Span()

	// Переменная для хранения результата
	var result *domain.Appointment

	// 12. Повторная проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 12.1. Перечитываем записи дня с блокировкой (FOR UPDATE).
		// По всему бизнесу, без фильтра по точке: плавающий сотрудник
		// может быть занят записью в другой точке.
		filter := domain.AppointmentsFilter{
			BusinessID:      req.BusinessID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 12.2. Блокировки, покрывающие дату
		blocked, err := uc.blockedRepo.GetForDate(txCtx, req.BusinessID, req.Date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blocked times: %v", err)
			return fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
		}

		snapshot := engine.Snapshot{
			Location:     location,
			Staff:        staff,
			Appointments: derefAppointments(appointments),
			Blocked:      blocked,
		}

		// 12.3. Проверяем слот для каждого кандидата на свежих данных
		passing := make([]int64, 0, len(eligible))
		for i := range eligible {
			reason := engine.CheckStaffSlot(eligible[i], snapshot, req.Date, startTime, span, policy.DefaultBufferMinutes)
			if reason == engine.ReasonOK {
				passing = append(passing, eligible[i].ID)
			}
		}

		// 12.4. Назначаем сотрудника: первый подходящий в порядке каталога
		assignedID, err := engine.AssignStaff(passing)
		if err != nil {
			uc.logger.Warn("CreateAppointment: slot %s on %s no longer available",
				startTime, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 12.5. Создаем запись с денормализацией данных услуг
		apt := &domain.Appointment{
			BusinessID:      req.BusinessID,
			LocationID:      req.LocationID,
			StaffID:         &assignedID,
			ClientID:        req.ClientID,
			Date:            req.Date,
			StartTime:       startTime,
			DurationMinutes: cart.TotalDuration(),
			BufferMinutes:   ptr.Ptr(cart.EffectiveBuffer()),
			Status:          domain.StatusConfirmed,
			ServiceNames:    joinServiceNames(cart),
			TotalPrice:      totalPrice(cart),
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, apt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, staff=%d", result.ID, *result.StaffID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		BusinessID:      result.BusinessID,
		LocationID:      result.LocationID,
		StaffID:         *result.StaffID,
		ClientID:        result.ClientID,
		Date:            result.Date,
		StartTime:       result.StartTime.String(),
		DurationMinutes: result.DurationMinutes,
		BufferMinutes:   *result.BufferMinutes,
		Status:          string(result.Status),
		ServiceNames:    result.ServiceNames,
		TotalPrice:      result.TotalPrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
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

func joinServiceNames(cart domain.ServiceCart) string {
	names := make([]string, 0, len(cart))
	for _, svc := range cart {
		names = append(names, svc.Name)
	}
	return strings.Join(names, ", ")
}

func totalPrice(cart domain.ServiceCart) float64 {
	total := 0.0
	for _, svc := range cart {
		total += svc.Price
	}
	return total
}

func derefAppointments(appointments []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt != nil {
			out = append(out, *apt)
		}
	}
	return out
}
