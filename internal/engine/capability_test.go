package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-AvailabilityService/internal/domain"
	"github.com/m04kA/SLN-AvailabilityService/pkg/ptr"
)

func TestEligibleStaff(t *testing.T) {
	cart := domain.ServiceCart{
		{ID: 10, DurationMinutes: 30},
		{ID: 20, DurationMinutes: 45},
	}

	tests := []struct {
		name    string
		staff   domain.StaffMember
		wantIn  bool
	}{
		{
			name:   "covers every cart service",
			staff:  domain.StaffMember{ID: 1, ServiceIDs: []int64{10, 20, 30}, Active: true},
			wantIn: true,
		},
		{
			name:   "all-services sentinel",
			staff:  domain.StaffMember{ID: 2, AllServices: true, Active: true},
			wantIn: true,
		},
		{
			name:   "partial capability does not qualify",
			staff:  domain.StaffMember{ID: 3, ServiceIDs: []int64{10}, Active: true},
			wantIn: false,
		},
		{
			name:   "wrong location pin",
			staff:  domain.StaffMember{ID: 4, LocationID: ptr.Ptr(int64(99)), AllServices: true, Active: true},
			wantIn: false,
		},
		{
			name:   "floating staff serves any location",
			staff:  domain.StaffMember{ID: 5, LocationID: nil, AllServices: true, Active: true},
			wantIn: true,
		},
		{
			name:   "matching location pin",
			staff:  domain.StaffMember{ID: 6, LocationID: ptr.Ptr(int64(1)), AllServices: true, Active: true},
			wantIn: true,
		},
		{
			name:   "inactive staff never schedulable",
			staff:  domain.StaffMember{ID: 7, AllServices: true, Active: false},
			wantIn: false,
		},
		{
			name:   "back of house never schedulable",
			staff:  domain.StaffMember{ID: 8, AllServices: true, Active: true, BackOfHouse: true},
			wantIn: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleStaff([]domain.StaffMember{tt.staff}, 1, cart)
			if tt.wantIn {
				require.Len(t, got, 1)
				assert.Equal(t, tt.staff.ID, got[0].ID)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestEligibleStaffAllOrNothing(t *testing.T) {
	// Сотрудник, подходящий для корзины из двух услуг, подходит и для
	// каждой услуги по отдельности
	member := domain.StaffMember{ID: 1, ServiceIDs: []int64{10, 20}, Active: true}
	pair := domain.ServiceCart{{ID: 10}, {ID: 20}}

	require.Len(t, EligibleStaff([]domain.StaffMember{member}, 1, pair), 1)
	for _, svc := range pair {
		single := domain.ServiceCart{svc}
		assert.Len(t, EligibleStaff([]domain.StaffMember{member}, 1, single), 1)
	}
}

func TestEligibleStaffPreservesOrder(t *testing.T) {
	staff := []domain.StaffMember{
		{ID: 3, AllServices: true, Active: true},
		{ID: 1, AllServices: true, Active: true},
		{ID: 2, AllServices: true, Active: false},
		{ID: 5, AllServices: true, Active: true},
	}

	got := EligibleStaff(staff, 1, domain.ServiceCart{{ID: 10}})
	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(5), got[2].ID)
}
