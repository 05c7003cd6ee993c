package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/internal/engine"
	businessClient "github.com/m04kA/SLN-AvailabilityService/internal/integrations/businessservice"
)

// UseCase use case для расчёта доступных слотов
type UseCase struct {
	appointmentRepo AppointmentRepository
	blockedRepo     BlockedTimeRepository
	businessClient  BusinessServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	blockedRepo BlockedTimeRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		blockedRepo:     blockedRepo,
		businessClient:  businessClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case расчёта слотов
// Собирает снимок данных (каталог, записи, блокировки) и передаёт его
// чистому движку; сам движок ввода-вывода не делает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, location=%d, services=%v, date=%s, staff=%v",
		req.BusinessID, req.LocationID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем каталог бизнеса
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Проверяем существование точки
	locationDoc, ok := business.Location(req.LocationID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: location id=%d not found in business id=%d", req.LocationID, req.BusinessID)
		return nil, ErrLocationNotFound
	}

	location, err := locationDoc.ToDomain()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid location id=%d schedule: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: invalid location schedule: %v", ErrInternal, err)
	}

	// 5. Собираем корзину услуг
	cart, err := business.ServiceCart(req.ServiceIDs)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, ErrServiceNotFound
	}

	// 6. Закрепленный сотрудник должен существовать в каталоге
	if req.StaffID != nil {
		if err := validateStaffExists(business, *req.StaffID); err != nil {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in business id=%d", *req.StaffID, req.BusinessID)
			return nil, err
		}
	}

	// 7. Конвертируем сотрудников, порядок каталога сохраняется
	staff, err := business.StaffForLocation()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid staff schedule in business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid staff schedule: %v", ErrInternal, err)
	}

	// 8. Разрешаем политику бронирования из легаси-полей каталога
	policy := businessClient.ResolvePolicy(business)

	// 9. Читаем активные записи бизнеса на эту дату. Без фильтра по точке:
	// плавающий сотрудник может быть занят записью в другой точке.
	filter := domain.AppointmentsFilter{
		BusinessID:      req.BusinessID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 10. Читаем блокировки, покрывающие дату
	blocked, err := uc.blockedRepo.GetForDate(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked times: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked times: %v", ErrInternal, err)
	}

	// 11. Запускаем движок на собранном снимке
	snapshot := engine.Snapshot{
		Location:     location,
		Staff:        staff,
		Appointments: derefAppointments(appointments),
		Blocked:      blocked,
	}

	result, err := engine.GenerateSlots(engine.GenerateRequest{
		Date:     req.Date,
		Now:      now,
		Cart:     cart,
		StaffID:  req.StaffID,
		Policy:   policy,
		Snapshot: snapshot,
	})
	if err != nil {
		if errors.Is(err, engine.ErrEmptyCart) {
			return nil, fmt.Errorf("%w: empty service cart", ErrInvalidInput)
		}
		uc.logger.Error("GetAvailableSlots: engine error: %v", err)
		return nil, fmt.Errorf("%w: engine error: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: date=%s reason=%s, generated %d slots for business=%d, location=%d",
		req.Date.Format(domain.DateFormat), result.DateReason, len(result.Slots), req.BusinessID, req.LocationID)

	return fromEngineResult(req, cart.Span(), result), nil
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
