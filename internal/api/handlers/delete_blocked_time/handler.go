package delete_blocked_time

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SLN-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SLN-AvailabilityService/internal/service/blockedtimes"
	"github.com/m04kA/SLN-AvailabilityService/internal/service/blockedtimes/models"
)

const (
	msgInvalidBusinessID    = "некорректный ID бизнеса"
	msgInvalidBlockedTimeID = "некорректный ID блокировки"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgBusinessNotFound     = "бизнес не найден"
	msgBlockedTimeNotFound  = "блокировка не найдена"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	service BlockedTimeService
	logger  Logger
}

func NewHandler(service BlockedTimeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/businesses/{businessId}/blocked-times/{blockedTimeId}
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/blocked-times/{id} - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	blockedTimeID, err := strconv.ParseInt(vars["blockedTimeId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/blocked-times/{id} - Invalid blocked time ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedTimeID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /businesses/{id}/blocked-times/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteBlockedTimeRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if err := h.service.Delete(r.Context(), blockedTimeID, req); err != nil {
		switch {
		case errors.Is(err, blockedtimes.ErrBlockedTimeNotFound):
			h.logger.Warn("DELETE /businesses/{id}/blocked-times/{id} - Blocked time not found: blocked_time_id=%d",
				blockedTimeID)
			handlers.RespondNotFound(w, msgBlockedTimeNotFound)

		case errors.Is(err, blockedtimes.ErrBusinessNotFound):
			h.logger.Warn("DELETE /businesses/{id}/blocked-times/{id} - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, blockedtimes.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/blocked-times/{id} - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{id}/blocked-times/{id} - Failed to delete blocked time: blocked_time_id=%d, error=%v",
				blockedTimeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/blocked-times/{id} - Blocked time deleted: blocked_time_id=%d, business_id=%d",
		blockedTimeID, businessID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
