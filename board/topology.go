// Package board holds the static hex grid: cell indexing and the join table
// of the six neighbours of every cell.
package board

import (
	"errors"
	"fmt"
)

// None marks a neighbour that falls off the board.
const None = -1

// Directions is the number of neighbours of a hex cell.
const Directions = 6

// Direction indexes the six neighbours, clockwise from upper right.
type Direction int

const (
	UpperRight Direction = iota
	Right
	LowerRight
	LowerLeft
	Left
	UpperLeft
)

var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// Opposite returns the direction pointing back at the origin cell.
func Opposite(d Direction) Direction {
	return (d + 3) % Directions
}

// Rotate turns d by steps (negative steps turn counter clockwise).
func Rotate(d Direction, steps int) Direction {
	r := (int(d) + steps) % Directions
	if r < 0 {
		r += Directions
	}
	return Direction(r)
}

// Topology is the immutable geometry of a board. Odd rows are shifted half a
// cell to the right.
type Topology struct {
	width  int
	height int
	join   [][Directions]int
}

// NewTopology builds the join table for a width x height board.
func NewTopology(width, height int) (*Topology, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	t := &Topology{
		width:  width,
		height: height,
		join:   make([][Directions]int, width*height),
	}
	for c := range t.join {
		for d := Direction(0); d < Directions; d++ {
			t.join[c][d] = t.neighbor(c, d)
		}
	}
	return t, nil
}

// MustTopology is NewTopology for dimensions known to be valid.
func MustTopology(width, height int) *Topology {
	t, err := NewTopology(width, height)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Topology) neighbor(cell int, d Direction) int {
	x, y := t.XY(cell)
	f := y % 2
	var dx, dy int
	switch d {
	case UpperRight:
		dx, dy = f, -1
	case Right:
		dx = 1
	case LowerRight:
		dx, dy = f, 1
	case LowerLeft:
		dx, dy = f-1, 1
	case Left:
		dx = -1
	case UpperLeft:
		dx, dy = f-1, -1
	default:
		return None
	}
	return t.Cell(x+dx, y+dy)
}

// Width is the number of columns.
func (t *Topology) Width() int { return t.width }

// Height is the number of rows.
func (t *Topology) Height() int { return t.height }

// Cells is the total number of cells.
func (t *Topology) Cells() int { return len(t.join) }

// Neighbor returns the cell next to cell in direction d, or None.
func (t *Topology) Neighbor(cell int, d Direction) int {
	if cell < 0 || cell >= len(t.join) || d < 0 || d >= Directions {
		return None
	}
	return t.join[cell][d]
}

// Neighbors returns the whole join table row of a cell.
func (t *Topology) Neighbors(cell int) [Directions]int {
	return t.join[cell]
}

// XY converts a cell index to column and row.
func (t *Topology) XY(cell int) (x, y int) {
	return cell % t.width, cell / t.width
}

// Cell converts column and row to a cell index, or None when off the board.
func (t *Topology) Cell(x, y int) int {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return None
	}
	return y*t.width + x
}
