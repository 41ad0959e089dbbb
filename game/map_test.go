package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLookup(t *testing.T) {
	r := buildRegistry(8, map[int]int{1: 0, 2: 1}, [][2]int{{1, 2}})

	t.Run("active id", func(t *testing.T) {
		a, err := r.Lookup(2)
		require.NoError(t, err)
		require.Equal(t, 1, a.Owner)
	})

	t.Run("invalid ids", func(t *testing.T) {
		for _, id := range []int{0, -1, 3, 8} {
			_, err := r.Lookup(id)
			require.ErrorIs(t, err, ErrInvalidAreaID, "Id %d should be rejected", id)
		}
	})

	t.Run("asserting accessor panics", func(t *testing.T) {
		require.Panics(t, func() { r.Area(3) }, "Inactive area lookups are programming errors")
		require.Panics(t, func() { r.IsAdjacent(1, 7) }, "Adjacency queries need active ids")
	})
}

func TestRegistryAdjacency(t *testing.T) {
	r := buildRegistry(8, map[int]int{1: 0, 2: 1, 3: 1}, [][2]int{{1, 2}})

	require.True(t, r.Area(1).RawAdjacent(2), "Generated flag should be readable")
	require.False(t, r.Area(2).RawAdjacent(1), "Raw flags stay directed")
	require.True(t, r.IsAdjacent(2, 1), "Symmetric accessor should see the reverse flag")
	require.False(t, r.IsAdjacent(1, 3))
	require.Equal(t, []int{2}, r.Neighbors(1))
	require.Equal(t, []int{1}, r.Neighbors(2))
	require.Equal(t, []int{1, 2, 3}, r.ActiveIDs())
	require.Equal(t, []int{2, 3}, r.Owned(1))
}

func TestRegistryClone(t *testing.T) {
	r := buildRegistry(8, map[int]int{1: 0, 2: 1}, [][2]int{{1, 2}})
	c := r.Clone()

	c.Area(1).Owner = 1
	c.Area(1).Dice = 5
	c.areas[1].MarkAdjacent(4)

	require.Equal(t, 0, r.Area(1).Owner, "Clone owners should be independent")
	require.Equal(t, 1, r.Area(1).Dice, "Clone dice should be independent")
	require.False(t, r.Area(1).RawAdjacent(4), "Clone flags should be independent")
}
