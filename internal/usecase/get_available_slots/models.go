package get_available_slots

import (
	"time"

	"github.com/m04kA/SLN-AvailabilityService/internal/engine"
)

// Request модель запроса на получение слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	LocationID int64     // ID точки обслуживания
	ServiceIDs []int64   // Корзина услуг (порядок сохраняется)
	Date       time.Time // Дата для расчёта слотов (без времени)
	StaffID    *int64    // Закрепленный сотрудник (опционально)
}

// Response модель ответа со слотами на дату
// DateReason объясняет отказ на уровне даты; при отказе Slots пуст
type Response struct {
	BusinessID int64  // ID бизнеса
	LocationID int64  // ID точки
	Date       string // Дата в формате "2006-01-02"
	DateReason string // "ok", "too-soon", "too-far", "holiday"
	Slots      []Slot // Решение по каждому слоту дня
}

// Slot модель одного слота
// Недоступные слоты не скрываются, а возвращаются с причиной
type Slot struct {
	StartTime        string  // Время начала, "10:00"
	StartTimeDisplay string  // Время для отображения, "10:00 AM"
	DurationMinutes  int     // Занимаемое время: услуги + буфер
	Available        bool    // Доступен ли слот
	Reason           string  // Причина решения
	EligibleStaffIDs []int64 // Сотрудники, способные принять слот
}

func fromEngineResult(req *Request, spanMinutes int, result *engine.GenerateResult) *Response {
	slots := make([]Slot, 0, len(result.Slots))
	for _, decision := range result.Slots {
		slots = append(slots, Slot{
			StartTime:        decision.Start.String(),
			StartTimeDisplay: decision.Start.Clock12(),
			DurationMinutes:  spanMinutes,
			Available:        decision.Available,
			Reason:           string(decision.Reason),
			EligibleStaffIDs: decision.EligibleStaff,
		})
	}

	return &Response{
		BusinessID: req.BusinessID,
		LocationID: req.LocationID,
		Date:       req.Date.Format("2006-01-02"),
		DateReason: string(result.DateReason),
		Slots:      slots,
	}
}
