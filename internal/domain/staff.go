package domain

// StaffMember represents one service provider of a business.
type StaffMember struct {
	ID   int64
	Name string

	// LocationID закрепляет сотрудника за точкой; nil — сотрудник работает
	// на любой точке бизнеса
	LocationID *int64

	// Hours собственное недельное расписание сотрудника. Пустая карта —
	// расписание наследуется от точки.
	Hours  WeekSchedule
	Breaks []Break

	// ServiceIDs перечень услуг, которые сотрудник выполняет.
	// AllServices — sentinel "any service", ServiceIDs при этом игнорируется.
	ServiceIDs  []int64
	AllServices bool

	Active      bool
	BackOfHouse bool
}

// Schedulable reports whether the staff member can ever be booked.
// Inactive and back-of-house staff are excluded outright.
func (s *StaffMember) Schedulable() bool {
	return s.Active && !s.BackOfHouse
}

// WorksAt reports whether the staff member serves the given location.
func (s *StaffMember) WorksAt(locationID int64) bool {
	return s.LocationID == nil || *s.LocationID == locationID
}

// CanPerform reports whether the staff member is capable of one service.
func (s *StaffMember) CanPerform(serviceID int64) bool {
	if s.AllServices {
		return true
	}
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// CanPerformAll reports whether the staff member covers every service in the
// cart. Partial capability does not qualify.
func (s *StaffMember) CanPerformAll(cart ServiceCart) bool {
	for _, svc := range cart {
		if !s.CanPerform(svc.ID) {
			return false
		}
	}
	return true
}
