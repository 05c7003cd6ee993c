package create_blocked_time

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
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры блокировки"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgBusinessNotFound   = "бизнес не найден"
	msgStaffNotFound      = "сотрудник не найден"
	msgForbidden          = "доступ запрещен"
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

// CreateBlockedTimeRequest HTTP request model
// StaffID nil означает блокировку на всю команду
type CreateBlockedTimeRequest struct {
	StaffID   *int64 `json:"staffId,omitempty"`
	StartDate string `json:"startDate"` // "2025-10-15"
	EndDate   string `json:"endDate"`   // включительно
	StartTime string `json:"startTime"` // "12:00" или "12:00 PM"
	EndTime   string `json:"endTime"`
	Reason    string `json:"reason,omitempty"`
}

// Handle POST /api/v1/businesses/{businessId}/blocked-times
// Доступно только менеджерам бизнеса
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/blocked-times - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/blocked-times - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlockedTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/blocked-times - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateBlockedTimeRequest{
		UserID:     userID,
		BusinessID: businessID,
		StaffID:    req.StaffID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Reason:     req.Reason,
	}

	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blockedtimes.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/blocked-times - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, blockedtimes.ErrStaffNotFound):
			h.logger.Warn("POST /businesses/{id}/blocked-times - Staff not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, blockedtimes.ErrAccessDenied):
			h.logger.Warn("POST /businesses/{id}/blocked-times - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blockedtimes.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/blocked-times - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/blocked-times - Failed to create blocked time: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/blocked-times - Blocked time created: blocked_time_id=%d, business_id=%d",
		result.ID, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
