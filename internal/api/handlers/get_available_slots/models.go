package get_available_slots

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SLN-AvailabilityService/internal/usecase/get_available_slots"
)

var errInvalidServiceIDs = errors.New("invalid service IDs")

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BusinessID int64           `json:"businessId"`
	LocationID int64           `json:"locationId"`
	Date       string          `json:"date"`
	DateReason string          `json:"dateReason"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
// Недоступные слоты возвращаются с причиной, а не скрываются
type AvailableSlot struct {
	StartTime        string  `json:"startTime"`
	StartTimeDisplay string  `json:"startTimeDisplay"`
	DurationMinutes  int     `json:"durationMinutes"`
	Available        bool    `json:"available"`
	Reason           string  `json:"reason,omitempty"`
	EligibleStaffIDs []int64 `json:"eligibleStaffIds,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:        slot.StartTime,
			StartTimeDisplay: slot.StartTimeDisplay,
			DurationMinutes:  slot.DurationMinutes,
			Available:        slot.Available,
			Reason:           slot.Reason,
			EligibleStaffIDs: slot.EligibleStaffIDs,
		}
	}

	return &AvailableSlotsResponse{
		BusinessID: resp.BusinessID,
		LocationID: resp.LocationID,
		Date:       resp.Date,
		DateReason: resp.DateReason,
		Slots:      slots,
	}
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(businessID, locationID int64, serviceIDsStr, dateStr string, staffID *int64) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	serviceIDs, err := parseServiceIDs(serviceIDsStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		LocationID: locationID,
		ServiceIDs: serviceIDs,
		Date:       date,
		StaffID:    staffID,
	}, nil
}

// parseServiceIDs парсит список ID услуг из query параметра "1,2,3"
func parseServiceIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidServiceIDs, part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
