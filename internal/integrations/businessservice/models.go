package businessservice

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/timeofday"
)

// Business каталог бизнеса из BusinessService
// Поля политики бронирования исторически дублируются: новые живут в
// bookingPolicy, старые лежат на верхнем уровне. Приоритеты разрешает
// ResolvePolicy, остальной код видит только domain.BookingPolicy.
type Business struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	BookingPolicy *PolicyDoc `json:"bookingPolicy,omitempty"`

	// Легаси-поле, предшественник bookingPolicy.minNoticeHours
	MinBookingNoticeHours *int `json:"minBookingNoticeHours,omitempty"`

	// Праздничные даты в формате "2006-01-02"
	Holidays []string `json:"holidays,omitempty"`

	// ManagerIDs пользователи с правами управления расписанием бизнеса
	ManagerIDs []int64 `json:"managerIds,omitempty"`

	Locations []Location    `json:"locations"`
	Staff     []StaffMember `json:"staff"`
	Services  []Service     `json:"services"`
}

// PolicyDoc документ политики бронирования
type PolicyDoc struct {
	MinNoticeHours       *int `json:"minNoticeHours,omitempty"`
	MaxAdvanceMonths     *int `json:"maxAdvanceMonths,omitempty"`
	MaxAdvanceDays       *int `json:"maxAdvanceDays,omitempty"` // легаси, в днях
	SlotIntervalMinutes  *int `json:"slotIntervalMinutes,omitempty"`
	DefaultBufferMinutes *int `json:"defaultBufferMinutes,omitempty"`
}

// Location точка обслуживания бизнеса
type Location struct {
	ID    int64             `json:"id"`
	Name  string            `json:"name"`
	Hours map[string]DayDoc `json:"hours"`
}

// DayDoc часы работы на один день недели
// Время приходит в смешанных форматах ("09:00" и "9:00 AM"),
// нормализация выполняется при конвертации в домен
type DayDoc struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// StaffMember сотрудник бизнеса
type StaffMember struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LocationID *int64 `json:"locationId,omitempty"` // nil — работает на любой точке

	// Hours nil — сотрудник наследует часы точки целиком
	Hours  map[string]DayDoc `json:"hours,omitempty"`
	Breaks []BreakDoc        `json:"breaks,omitempty"`

	Services    StaffServices `json:"services"`
	Active      bool          `json:"active"`
	BackOfHouse bool          `json:"backOfHouse,omitempty"`
}

// BreakDoc перерыв сотрудника
type BreakDoc struct {
	Day   string `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Service услуга бизнеса
type Service struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	BufferMinutes   int     `json:"bufferMinutes,omitempty"`
	Price           float64 `json:"price"`
}

// StaffServices список услуг сотрудника
// Каталог отдаёт либо список ID, либо сентинел ["all"]
type StaffServices struct {
	All bool
	IDs []int64
}

// UnmarshalJSON принимает как [1, 2, 3], так и ["all"]
func (s *StaffServices) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.All = false
	s.IDs = s.IDs[:0]

	for _, item := range raw {
		var id int64
		if err := json.Unmarshal(item, &id); err == nil {
			s.IDs = append(s.IDs, id)
			continue
		}

		var str string
		if err := json.Unmarshal(item, &str); err != nil {
			return fmt.Errorf("staff services: unexpected element %s", string(item))
		}
		if str != "all" {
			return fmt.Errorf("staff services: unexpected sentinel %q", str)
		}
		s.All = true
	}

	return nil
}

// MarshalJSON симметричен UnmarshalJSON
func (s StaffServices) MarshalJSON() ([]byte, error) {
	if s.All {
		return json.Marshal([]string{"all"})
	}
	if s.IDs == nil {
		return json.Marshal([]int64{})
	}
	return json.Marshal(s.IDs)
}

// ErrorResponse модель ошибки от BusinessService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Методы конвертации в доменные модели

// IsManager проверяет, входит ли пользователь в список менеджеров бизнеса
func (b *Business) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Location находит точку бизнеса по ID
func (b *Business) Location(locationID int64) (*Location, bool) {
	for i := range b.Locations {
		if b.Locations[i].ID == locationID {
			return &b.Locations[i], true
		}
	}
	return nil, false
}

// ServiceCart собирает корзину услуг по списку ID, сохраняя порядок запроса
func (b *Business) ServiceCart(serviceIDs []int64) (domain.ServiceCart, error) {
	byID := make(map[int64]*Service, len(b.Services))
	for i := range b.Services {
		byID[b.Services[i].ID] = &b.Services[i]
	}

	cart := make(domain.ServiceCart, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("service id=%d not found in business id=%d catalog", id, b.ID)
		}
		cart = append(cart, domain.Service{
			ID:              svc.ID,
			Name:            svc.Name,
			Category:        svc.Category,
			DurationMinutes: svc.DurationMinutes,
			BufferMinutes:   svc.BufferMinutes,
			Price:           svc.Price,
		})
	}

	return cart, nil
}

// ToDomain конвертирует точку с нормализацией часов работы
func (l *Location) ToDomain() (domain.Location, error) {
	hours, err := toDomainSchedule(l.Hours)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: location id=%d: %v", ErrInvalidSchedule, l.ID, err)
	}

	return domain.Location{
		ID:    l.ID,
		Name:  l.Name,
		Hours: hours,
	}, nil
}

// ToDomain конвертирует сотрудника с нормализацией часов и перерывов
func (s *StaffMember) ToDomain() (domain.StaffMember, error) {
	var hours domain.WeekSchedule
	if s.Hours != nil {
		parsed, err := toDomainSchedule(s.Hours)
		if err != nil {
			return domain.StaffMember{}, fmt.Errorf("%w: staff id=%d: %v", ErrInvalidSchedule, s.ID, err)
		}
		hours = parsed
	}

	breaks := make([]domain.Break, 0, len(s.Breaks))
	for _, br := range s.Breaks {
		day, ok := timeofday.ParseWeekday(br.Day)
		if !ok {
			return domain.StaffMember{}, fmt.Errorf("%w: staff id=%d: unknown weekday %q", ErrInvalidSchedule, s.ID, br.Day)
		}
		start, err := timeofday.Parse(br.Start)
		if err != nil {
			return domain.StaffMember{}, fmt.Errorf("%w: staff id=%d: break start: %v", ErrInvalidSchedule, s.ID, err)
		}
		end, err := timeofday.Parse(br.End)
		if err != nil {
			return domain.StaffMember{}, fmt.Errorf("%w: staff id=%d: break end: %v", ErrInvalidSchedule, s.ID, err)
		}
		breaks = append(breaks, domain.Break{Day: day, Start: start, End: end})
	}

	return domain.StaffMember{
		ID:          s.ID,
		Name:        s.Name,
		LocationID:  s.LocationID,
		Hours:       hours,
		Breaks:      breaks,
		ServiceIDs:  s.Services.IDs,
		AllServices: s.Services.All,
		Active:      s.Active,
		BackOfHouse: s.BackOfHouse,
	}, nil
}

// StaffForLocation конвертирует всех сотрудников бизнеса, сохраняя порядок каталога
func (b *Business) StaffForLocation() ([]domain.StaffMember, error) {
	staff := make([]domain.StaffMember, 0, len(b.Staff))
	for i := range b.Staff {
		member, err := b.Staff[i].ToDomain()
		if err != nil {
			return nil, err
		}
		staff = append(staff, member)
	}
	return staff, nil
}

func toDomainSchedule(hours map[string]DayDoc) (domain.WeekSchedule, error) {
	schedule := make(domain.WeekSchedule, len(hours))

	for dayName, doc := range hours {
		day, ok := timeofday.ParseWeekday(dayName)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", dayName)
		}

		if doc.Closed {
			schedule[day] = domain.DayHours{Closed: true}
			continue
		}

		open, err := timeofday.Parse(doc.Open)
		if err != nil {
			return nil, fmt.Errorf("%s open: %v", dayName, err)
		}
		closeAt, err := timeofday.Parse(doc.Close)
		if err != nil {
			return nil, fmt.Errorf("%s close: %v", dayName, err)
		}

		schedule[day] = domain.DayHours{Open: open, Close: closeAt}
	}

	return schedule, nil
}
