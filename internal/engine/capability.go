package engine

import (
	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
)

// EligibleStaff narrows the staff pool to members who can serve the whole
// cart at the given location. Checks run cheapest first, before any
// time-walking: status, location pin, then capability. The snapshot's
// original ordering is preserved; downstream assignment relies on it.
//
// Capability is all-or-nothing: for a multi-service cart the staff member
// must cover every service; partial capability does not qualify.
func EligibleStaff(staff []domain.StaffMember, locationID int64, cart domain.ServiceCart) []domain.StaffMember {
	eligible := make([]domain.StaffMember, 0, len(staff))

	for _, member := range staff {
		if !member.Schedulable() {
			continue
		}
		if !member.WorksAt(locationID) {
			continue
		}
		if !member.CanPerformAll(cart) {
			continue
		}
		eligible = append(eligible, member)
	}

	return eligible
}
