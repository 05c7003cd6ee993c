package domain

// Service represents one bookable service of a business.
type Service struct {
	ID              int64
	Name            string
	Category        string
	DurationMinutes int
	BufferMinutes   int
	Price           float64
}

// Duration returns the service duration, falling back to the default when
// the source document carried none.
func (s Service) Duration() int {
	if s.DurationMinutes <= 0 {
		return DefaultServiceDurationMinutes
	}
	return s.DurationMinutes
}

// ServiceCart is the ordered set of services selected for one appointment.
type ServiceCart []Service

// IsEmpty reports whether the cart contains no services.
func (c ServiceCart) IsEmpty() bool {
	return len(c) == 0
}

// TotalDuration суммарная длительность всех услуг корзины
func (c ServiceCart) TotalDuration() int {
	total := 0
	for _, svc := range c {
		total += svc.Duration()
	}
	return total
}

// EffectiveBuffer is the maximum buffer across the cart, applied once.
// Buffer is transition/cleanup time that happens once per appointment
// regardless of service count, so buffers are never summed.
func (c ServiceCart) EffectiveBuffer() int {
	max := 0
	for _, svc := range c {
		if svc.BufferMinutes > max {
			max = svc.BufferMinutes
		}
	}
	return max
}

// Span is the total time a candidate appointment occupies: every service
// back to back plus the effective buffer.
func (c ServiceCart) Span() int {
	return c.TotalDuration() + c.EffectiveBuffer()
}
