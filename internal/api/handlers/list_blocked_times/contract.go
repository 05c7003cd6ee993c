package list_blocked_times

import (
	"context"

	"github.com/m04kA/SLN-AvailabilityService/internal/service/blockedtimes/models"
)

type BlockedTimeService interface {
	List(ctx context.Context, req *models.ListBlockedTimesRequest) (*models.BlockedTimeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
