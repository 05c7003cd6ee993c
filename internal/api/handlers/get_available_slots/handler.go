package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SLN-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SLN-AvailabilityService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidLocationID  = "некорректный ID точки"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgMissingServiceIDs  = "ID услуг обязательны"
	msgInvalidServiceIDs  = "некорректный список ID услуг"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound   = "бизнес не найден"
	msgLocationNotFound   = "точка не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgInvalidSlotRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/locations/{locationId}/slots
// Query params: serviceIds (required, "1,2,3"), date (required, YYYY-MM-DD),
// staffId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем locationId из URL
	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	// Извлекаем serviceIds из query параметров
	serviceIDsStr := r.URL.Query().Get("serviceIds")
	if serviceIDsStr == "" {
		h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Missing service IDs")
		handlers.RespondBadRequest(w, msgMissingServiceIDs)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем staffId из query параметров (опционально)
	var staffID *int64
	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	// Формируем запрос к use case (с парсингом даты и списка услуг)
	useCaseReq, err := ToUseCaseRequest(businessID, locationID, serviceIDsStr, dateStr, staffID)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidServiceIDs) {
			handlers.RespondBadRequest(w, msgInvalidServiceIDs)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrLocationNotFound):
			h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Location not found: business_id=%d, location_id=%d",
				businessID, locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Service not found: business_id=%d, services=%s",
				businessID, serviceIDsStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Staff not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/locations/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotRequest)

		default:
			h.logger.Error("GET /businesses/{id}/locations/{id}/slots - Failed to get slots: business_id=%d, location_id=%d, error=%v",
				businessID, locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/locations/{id}/slots - Slots calculated: business_id=%d, location_id=%d, date=%s, slots=%d",
		businessID, locationID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
