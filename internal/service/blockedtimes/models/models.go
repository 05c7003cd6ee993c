package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// Request модели

// CreateBlockedTimeRequest запрос на создание блокировки
// StaffID nil означает блокировку на всю команду
type CreateBlockedTimeRequest struct {
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	StaffID    *int64 `json:"staffId,omitempty"`
	StartDate  string `json:"startDate"` // "2025-10-15"
	EndDate    string `json:"endDate"`   // включительно
	StartTime  string `json:"startTime"` // "12:00" или "12:00 PM"
	EndTime    string `json:"endTime"`
	Reason     string `json:"reason,omitempty"`
}

// ToDomain валидирует и конвертирует запрос в доменную модель
func (r *CreateBlockedTimeRequest) ToDomain() (*domain.BlockedTimeRange, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: %v", r.StartDate, err)
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q: %v", r.EndDate, err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("endDate %q is before startDate %q", r.EndDate, r.StartDate)
	}

	startMinute, err := timeofday.Parse(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime %q: %v", r.StartTime, err)
	}
	endMinute, err := timeofday.Parse(r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime %q: %v", r.EndTime, err)
	}
	if endMinute <= startMinute {
		return nil, fmt.Errorf("endTime %q must be after startTime %q", r.EndTime, r.StartTime)
	}

	return &domain.BlockedTimeRange{
		BusinessID:  r.BusinessID,
		StaffID:     r.StaffID,
		StartDate:   startDate,
		EndDate:     endDate,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Reason:      r.Reason,
	}, nil
}

// ListBlockedTimesRequest запрос на получение блокировок бизнеса
type ListBlockedTimesRequest struct {
	UserID     int64  `json:"userId"`
	BusinessID int64  `json:"businessId"`
	StaffID    *int64 `json:"staffId,omitempty"` // Фильтр по сотруднику (опционально)
}

// DeleteBlockedTimeRequest запрос на удаление блокировки
type DeleteBlockedTimeRequest struct {
	UserID     int64 `json:"userId"`
	BusinessID int64 `json:"businessId"`
}

// Response модели

// BlockedTimeResponse ответ с данными блокировки
type BlockedTimeResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	StaffID    *int64 `json:"staffId,omitempty"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Reason     string `json:"reason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BlockedTimeListResponse ответ со списком блокировок
type BlockedTimeListResponse struct {
	BlockedTimes []BlockedTimeResponse `json:"blockedTimes"`
}

// Методы конвертации

// FromDomainBlockedTime конвертирует domain модель в DTO
func FromDomainBlockedTime(b *domain.BlockedTimeRange) *BlockedTimeResponse {
	if b == nil {
		return nil
	}

	return &BlockedTimeResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		StaffID:    b.StaffID,
		StartDate:  b.StartDate.Format(domain.DateFormat),
		EndDate:    b.EndDate.Format(domain.DateFormat),
		StartTime:  b.StartMinute.String(),
		EndTime:    b.EndMinute.String(),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlockedTimeList конвертирует список domain моделей в DTO
func FromDomainBlockedTimeList(blocked []domain.BlockedTimeRange) *BlockedTimeListResponse {
	resp := &BlockedTimeListResponse{
		BlockedTimes: make([]BlockedTimeResponse, 0, len(blocked)),
	}

	for i := range blocked {
		if b := FromDomainBlockedTime(&blocked[i]); b != nil {
			resp.BlockedTimes = append(resp.BlockedTimes, *b)
		}
	}

	return resp
}
