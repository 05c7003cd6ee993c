package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignStaff(t *testing.T) {
	t.Run("first eligible wins", func(t *testing.T) {
		id, err := AssignStaff([]int64{5, 3, 9})
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
	})

	t.Run("single candidate", func(t *testing.T) {
		id, err := AssignStaff([]int64{7})
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("empty pool", func(t *testing.T) {
		_, err := AssignStaff(nil)
		assert.ErrorIs(t, err, ErrNoEligibleStaff)
	})
}
