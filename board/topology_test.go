package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTopology(t *testing.T) {
	t.Run("rejects non positive dimensions", func(t *testing.T) {
		_, err := NewTopology(0, 4)
		require.ErrorIs(t, err, ErrInvalidDimensions, "Zero width should be rejected")
		_, err = NewTopology(4, -1)
		require.ErrorIs(t, err, ErrInvalidDimensions, "Negative height should be rejected")
	})

	t.Run("sizes the join table", func(t *testing.T) {
		top := MustTopology(28, 32)
		require.Equal(t, 28*32, top.Cells(), "Every cell should get a join row")
	})
}

func TestNeighbor(t *testing.T) {
	top := MustTopology(5, 4)

	t.Run("even row offsets", func(t *testing.T) {
		// cell (2,2) on an even row
		c := top.Cell(2, 2)
		require.Equal(t, top.Cell(2, 1), top.Neighbor(c, UpperRight))
		require.Equal(t, top.Cell(3, 2), top.Neighbor(c, Right))
		require.Equal(t, top.Cell(2, 3), top.Neighbor(c, LowerRight))
		require.Equal(t, top.Cell(1, 3), top.Neighbor(c, LowerLeft))
		require.Equal(t, top.Cell(1, 2), top.Neighbor(c, Left))
		require.Equal(t, top.Cell(1, 1), top.Neighbor(c, UpperLeft))
	})

	t.Run("odd row offsets", func(t *testing.T) {
		c := top.Cell(2, 1)
		require.Equal(t, top.Cell(3, 0), top.Neighbor(c, UpperRight))
		require.Equal(t, top.Cell(3, 1), top.Neighbor(c, Right))
		require.Equal(t, top.Cell(3, 2), top.Neighbor(c, LowerRight))
		require.Equal(t, top.Cell(2, 2), top.Neighbor(c, LowerLeft))
		require.Equal(t, top.Cell(1, 1), top.Neighbor(c, Left))
		require.Equal(t, top.Cell(2, 0), top.Neighbor(c, UpperLeft))
	})

	t.Run("edges yield none", func(t *testing.T) {
		require.Equal(t, None, top.Neighbor(0, UpperRight), "Top row has no upper neighbours")
		require.Equal(t, None, top.Neighbor(0, Left), "Left column has no left neighbour")
		require.Equal(t, None, top.Neighbor(0, LowerLeft), "Even row left column has no lower left")
		last := top.Cells() - 1
		require.Equal(t, None, top.Neighbor(last, Right))
		require.Equal(t, None, top.Neighbor(last, LowerRight))
		require.Equal(t, None, top.Neighbor(-1, Right), "Out of range cells have no neighbours")
	})

	t.Run("neighbour relation is symmetric", func(t *testing.T) {
		top := MustTopology(28, 32)
		for c := 0; c < top.Cells(); c++ {
			for d := Direction(0); d < Directions; d++ {
				n := top.Neighbor(c, d)
				if n == None {
					continue
				}
				require.Equal(t, c, top.Neighbor(n, Opposite(d)),
					"Cell %d direction %d should point back from %d", c, d, n)
			}
		}
	})
}

func TestRotate(t *testing.T) {
	require.Equal(t, UpperRight, Rotate(UpperLeft, 1), "Rotation should wrap forward")
	require.Equal(t, Left, Rotate(UpperRight, -2), "Rotation should wrap backward")
	require.Equal(t, Left, Opposite(Right))
}
