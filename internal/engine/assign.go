package engine

// AssignStaff deterministically picks the staff member to commit an
// unpinned appointment against. The eligible list arrives in the snapshot's
// original order, so the pick is stable: first match wins. No round-robin,
// no least-recently-booked balancing.
//
// An empty list means the snapshot went stale between slot display and
// commit (another booking won the race); the caller must surface that as a
// failure rather than book an invalid staff member.
func AssignStaff(eligibleStaffIDs []int64) (int64, error) {
	if len(eligibleStaffIDs) == 0 {
		return 0, ErrNoEligibleStaff
	}
	return eligibleStaffIDs[0], nil
}
