package domain

// Location represents one physical site of a business.
type Location struct {
	ID    int64
	Name  string
	Hours WeekSchedule
}
