package delete_blocked_time

import (
	"context"

	"github.com/m04kA/SLN-AvailabilityService/internal/service/blockedtimes/models"
)

type BlockedTimeService interface {
	Delete(ctx context.Context, blockedTimeID int64, req *models.DeleteBlockedTimeRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
