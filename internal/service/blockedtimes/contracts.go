package blockedtimes

import (
	"context"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/internal/integrations/businessservice"
)

// BlockedTimeRepository интерфейс репозитория блокировок
type BlockedTimeRepository interface {
	Create(ctx context.Context, blocked *domain.BlockedTimeRange) (*domain.BlockedTimeRange, error)
	GetByBusinessID(ctx context.Context, businessID int64, staffID *int64) ([]domain.BlockedTimeRange, error)
	Delete(ctx context.Context, id int64) error
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
