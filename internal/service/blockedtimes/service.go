package blockedtimes

import (
	"context"
	"errors"
	"fmt"

	blockedRepo "github.com/m04kA/SLN-AvailabilityService/internal/infra/storage/blockedtime"
	businessClient "github.com/m04kA/SLN-AvailabilityService/internal/integrations/businessservice"
	"github.com/m04kA/SLN-AvailabilityService/internal/service/blockedtimes/models"
)

// Service сервис для управления блокировками расписания
type Service struct {
	blockedRepo    BlockedTimeRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockedRepo BlockedTimeRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		blockedRepo:    blockedRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// Create создает блокировку расписания
// Доступно только менеджерам бизнеса. StaffID nil блокирует всю команду,
// иначе сотрудник должен существовать в каталоге бизнеса.
func (s *Service) Create(ctx context.Context, req *models.CreateBlockedTimeRequest) (*models.BlockedTimeResponse, error) {
	s.logger.Info("Create: creating blocked time for business=%d by user=%d", req.BusinessID, req.UserID)

	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа менеджера
	if !business.IsManager(req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// Валидируем и конвертируем запрос
	blocked, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Create: invalid blocked time request for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Если блокировка адресная - сотрудник должен существовать
	if blocked.StaffID != nil {
		if !s.staffExists(business, *blocked.StaffID) {
			s.logger.Warn("Create: staff id=%d not found in business=%d", *blocked.StaffID, req.BusinessID)
			return nil, ErrStaffNotFound
		}
	}

	created, err := s.blockedRepo.Create(ctx, blocked)
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created blocked time id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainBlockedTime(created), nil
}

// List получает блокировки бизнеса
// Опционально фильтрует по сотруднику (включая блокировки "на всю команду")
func (s *Service) List(ctx context.Context, req *models.ListBlockedTimesRequest) (*models.BlockedTimeListResponse, error) {
	s.logger.Info("List: fetching blocked times for business=%d by user=%d", req.BusinessID, req.UserID)

	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	if !business.IsManager(req.UserID) {
		s.logger.Warn("List: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	blocked, err := s.blockedRepo.GetByBusinessID(ctx, req.BusinessID, req.StaffID)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocked times for business=%d", len(blocked), req.BusinessID)
	return models.FromDomainBlockedTimeList(blocked), nil
}

// Delete удаляет блокировку
// Доступно только менеджерам бизнеса
func (s *Service) Delete(ctx context.Context, blockedTimeID int64, req *models.DeleteBlockedTimeRequest) error {
	s.logger.Info("Delete: deleting blocked time id=%d for business=%d by user=%d",
		blockedTimeID, req.BusinessID, req.UserID)

	business, err := s.getBusiness(ctx, req.BusinessID)
	if err != nil {
		return err
	}

	if !business.IsManager(req.UserID) {
		s.logger.Warn("Delete: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return ErrAccessDenied
	}

	if err := s.blockedRepo.Delete(ctx, blockedTimeID); err != nil {
		if errors.Is(err, blockedRepo.ErrBlockedTimeNotFound) {
			s.logger.Warn("Delete: blocked time id=%d not found", blockedTimeID)
			return ErrBlockedTimeNotFound
		}
		s.logger.Error("Delete: repository error for blocked time id=%d: %v", blockedTimeID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted blocked time id=%d", blockedTimeID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBusiness(ctx context.Context, businessID int64) (*businessClient.Business, error) {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("getBusiness: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getBusiness: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}

func (s *Service) staffExists(business *businessClient.Business, staffID int64) bool {
	for i := range business.Staff {
		if business.Staff[i].ID == staffID {
			return true
		}
	}
	return false
}
