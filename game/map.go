package game

import (
	"errors"
	"fmt"

	"dicewars/board"
)

// Unowned marks an area without an owner.
const Unowned = -1

var ErrInvalidAreaID = errors.New("invalid area id")

// Bounds is an area's bounding box in grid coordinates.
type Bounds struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

// Point is a grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Edge is one step of a boundary walk: a cell and the direction facing out
// of its area.
type Edge struct {
	Cell int             `json:"cell"`
	Dir  board.Direction `json:"dir"`
}

// Area is a contiguous region of the board treated as one unit.
type Area struct {
	ID        int
	Size      int // number of cells; 0 means inactive
	Owner     int
	Dice      int
	Bounds    Bounds
	Centroid  Point
	LabelCell int
	Trace     []Edge
	joins     []bool // directed adjacency flags indexed by area id
}

// NewArea returns an inactive, unowned area able to flag adjacency with
// areaMax ids.
func NewArea(id, areaMax int) Area {
	return Area{
		ID:        id,
		Owner:     Unowned,
		LabelCell: board.None,
		joins:     make([]bool, areaMax),
	}
}

// Active reports whether the area survived generation.
func (a *Area) Active() bool {
	return a.Size > 0
}

// MarkAdjacent sets the directed flag a -> other. Only map generation
// should call this.
func (a *Area) MarkAdjacent(other int) {
	a.joins[other] = true
}

// RawAdjacent reads the directed flag a -> other as generation left it.
// Gameplay should use Registry.IsAdjacent.
func (a *Area) RawAdjacent(other int) bool {
	if other < 0 || other >= len(a.joins) {
		return false
	}
	return a.joins[other]
}

func (a Area) clone() Area {
	joins := make([]bool, len(a.joins))
	copy(joins, a.joins)
	a.joins = joins
	// Trace is fixed after generation and shared between copies.
	return a
}

// Registry holds every area of a generated board, indexed by id, and the
// area id of every cell.
type Registry struct {
	top   *board.Topology
	cells []int
	areas []Area
}

// NewRegistry wraps the output of map generation. cells may be nil for
// boards built by hand.
func NewRegistry(top *board.Topology, cells []int, areas []Area) *Registry {
	return &Registry{top: top, cells: cells, areas: areas}
}

// Topology returns the board the registry was generated on.
func (r *Registry) Topology() *board.Topology {
	return r.top
}

// Capacity is the size of the area id space, including the reserved id 0.
func (r *Registry) Capacity() int {
	return len(r.areas)
}

// CellArea returns the area id of a cell; 0 is background.
func (r *Registry) CellArea(cell int) int {
	if cell < 0 || cell >= len(r.cells) {
		return 0
	}
	return r.cells[cell]
}

// CellCount is the number of cells on the board.
func (r *Registry) CellCount() int {
	return len(r.cells)
}

// Lookup returns the active area with the given id.
func (r *Registry) Lookup(id int) (*Area, error) {
	if id <= 0 || id >= len(r.areas) {
		return nil, fmt.Errorf("%w: %d out of range", ErrInvalidAreaID, id)
	}
	a := &r.areas[id]
	if !a.Active() {
		return nil, fmt.Errorf("%w: %d is inactive", ErrInvalidAreaID, id)
	}
	return a, nil
}

// Area returns the active area with the given id and panics otherwise.
// Callers must only pass ids obtained from the registry.
func (r *Registry) Area(id int) *Area {
	a, err := r.Lookup(id)
	if err != nil {
		panic(err)
	}
	return a
}

// ActiveIDs lists active area ids in ascending order.
func (r *Registry) ActiveIDs() []int {
	ids := make([]int, 0, len(r.areas))
	for id := 1; id < len(r.areas); id++ {
		if r.areas[id].Active() {
			ids = append(ids, id)
		}
	}
	return ids
}

// ActiveCount is the number of active areas.
func (r *Registry) ActiveCount() int {
	n := 0
	for id := 1; id < len(r.areas); id++ {
		if r.areas[id].Active() {
			n++
		}
	}
	return n
}

// IsAdjacent reports whether two active areas share a border in either
// direction of the generated flags.
func (r *Registry) IsAdjacent(a, b int) bool {
	aa, ab := r.Area(a), r.Area(b)
	return aa.RawAdjacent(b) || ab.RawAdjacent(a)
}

// Neighbors lists the active areas adjacent to id.
func (r *Registry) Neighbors(id int) []int {
	r.Area(id)
	var out []int
	for other := 1; other < len(r.areas); other++ {
		if other == id || !r.areas[other].Active() {
			continue
		}
		if r.IsAdjacent(id, other) {
			out = append(out, other)
		}
	}
	return out
}

// Owned lists the active areas owned by player.
func (r *Registry) Owned(player int) []int {
	var out []int
	for id := 1; id < len(r.areas); id++ {
		if r.areas[id].Active() && r.areas[id].Owner == player {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a copy whose owners and dice can change independently.
// Topology, cells and traces are shared.
func (r *Registry) Clone() *Registry {
	areas := make([]Area, len(r.areas))
	for i := range r.areas {
		areas[i] = r.areas[i].clone()
	}
	return &Registry{top: r.top, cells: r.cells, areas: areas}
}
