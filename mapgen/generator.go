// Package mapgen carves a hex board into areas, assigns them to players and
// places the starting garrisons.
package mapgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"dicewars/board"
	"dicewars/game"
	"dicewars/meta"
)

var (
	// ErrInsufficientAreas means a pass produced fewer active areas than
	// players. Generate again with fresh randomness.
	ErrInsufficientAreas = errors.New("not enough areas for every player")
	// ErrTraceOverrun means a boundary walk did not close within the step
	// limit.
	ErrTraceOverrun = errors.New("boundary trace did not close")
)

type Option func(g *Generator)

// WithPlayers sets the number of seats areas are dealt to.
func WithPlayers(players int) Option {
	return func(g *Generator) {
		if players > 0 {
			g.players = players
		}
	}
}

// WithDicePerArea sets the average starting garrison.
func WithDicePerArea(dice int) Option {
	return func(g *Generator) {
		if dice > 0 {
			g.dicePerArea = dice
		}
	}
}

// WithAreaMax bounds the area id space.
func WithAreaMax(areaMax int) Option {
	return func(g *Generator) {
		if areaMax > 1 {
			g.areaMax = areaMax
		}
	}
}

// WithGrowthTarget sets the flood fill target of each area.
func WithGrowthTarget(cells int) Option {
	return func(g *Generator) {
		if cells > 0 {
			g.growthTarget = cells
		}
	}
}

// Generator builds area registries for one board. All randomness comes from
// the injected source, so a seeded source reproduces boards exactly.
type Generator struct {
	top          *board.Topology
	rng          *rand.Rand
	players      int
	dicePerArea  int
	areaMax      int
	growthTarget int
	maxDice      int
	traceLimit   int
}

func NewGenerator(top *board.Topology, rng *rand.Rand, options ...Option) *Generator {
	g := &Generator{ // Default values
		top:          top,
		rng:          rng,
		players:      meta.Players,
		dicePerArea:  meta.DicePerArea,
		areaMax:      meta.AreaMax,
		growthTarget: meta.GrowthTarget,
		maxDice:      meta.MaxDice,
		traceLimit:   meta.TraceLimit,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// pass holds the scratch state of one generation run.
type pass struct {
	*Generator
	rank      []int  // priority of each cell; lower grows first
	cells     []int  // area id of each cell
	reachable []bool // may seed the next area
	frontier  []bool // touched by the area growing now
	areas     []game.Area
}

func (g *Generator) newPass() *pass {
	n := g.top.Cells()
	p := &pass{
		Generator: g,
		rank:      g.rng.Perm(n),
		cells:     make([]int, n),
		reachable: make([]bool, n),
		frontier:  make([]bool, n),
		areas:     make([]game.Area, g.areaMax),
	}
	for id := range p.areas {
		p.areas[id] = game.NewArea(id, g.areaMax)
	}
	return p
}

// Generate runs one full pass. It returns ErrInsufficientAreas when fewer
// areas than players survive; retrying is up to the caller.
func (g *Generator) Generate() (*game.Registry, error) {
	p := g.newPass()

	p.grow()
	p.fillPockets()
	active := p.measure()
	if active < g.players {
		return nil, fmt.Errorf("%w: %d areas for %d players", ErrInsufficientAreas, active, g.players)
	}
	p.locate()
	p.link()
	p.assignOwners()
	if err := p.traceAll(); err != nil {
		return nil, err
	}
	p.garrison()

	return game.NewRegistry(g.top, p.cells, p.areas), nil
}

// GenerateWithRetry repeats Generate until every player can get an area.
// Only ErrInsufficientAreas is retried.
func (g *Generator) GenerateWithRetry(maxAttempts int) (*game.Registry, int, error) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var reg *game.Registry
		reg, err = g.Generate()
		if err == nil {
			return reg, attempt, nil
		}
		if !errors.Is(err, ErrInsufficientAreas) {
			return nil, attempt, err
		}
		log.Debug().Int("attempt", attempt).Err(err).Msg("regenerating map")
	}
	return nil, maxAttempts, fmt.Errorf("gave up after %d attempts: %w", maxAttempts, err)
}

// grow seeds areas one after another until nothing reachable is left or the
// id space is exhausted.
func (p *pass) grow() {
	p.reachable[p.rng.IntN(len(p.cells))] = true

	for id := 1; id < p.areaMax; id++ {
		seed := p.lowest(p.reachable)
		if seed == board.None {
			break
		}
		if p.percolate(seed, p.growthTarget, id) == 0 {
			break
		}
	}
}

// lowest returns the unassigned marked cell with the smallest rank.
func (p *pass) lowest(marked []bool) int {
	pos := board.None
	for c := range p.cells {
		if p.cells[c] > 0 || !marked[c] {
			continue
		}
		if pos == board.None || p.rank[c] < p.rank[pos] {
			pos = c
		}
	}
	return pos
}

// measure counts area sizes and drops areas that are too small. It returns
// the number of active areas.
func (p *pass) measure() int {
	for _, id := range p.cells {
		if id > 0 {
			p.areas[id].Size++
		}
	}
	active := 0
	for id := 1; id < len(p.areas); id++ {
		if p.areas[id].Size <= meta.DiscardSize {
			p.areas[id].Size = 0
			continue
		}
		active++
	}
	for c, id := range p.cells {
		if !p.areas[id].Active() {
			p.cells[c] = 0
		}
	}
	return active
}

// locate computes bounding boxes and centroids.
func (p *pass) locate() {
	for id := 1; id < len(p.areas); id++ {
		p.areas[id].Bounds = game.Bounds{
			Left: p.top.Width(), Right: -1,
			Top: p.top.Height(), Bottom: -1,
		}
	}
	for c, id := range p.cells {
		if id == 0 {
			continue
		}
		x, y := p.top.XY(c)
		b := &p.areas[id].Bounds
		b.Left = min(b.Left, x)
		b.Right = max(b.Right, x)
		b.Top = min(b.Top, y)
		b.Bottom = max(b.Bottom, y)
	}
	for id := 1; id < len(p.areas); id++ {
		a := &p.areas[id]
		if !a.Active() {
			continue
		}
		a.Centroid = game.Point{
			X: (a.Bounds.Left + a.Bounds.Right) / 2,
			Y: (a.Bounds.Top + a.Bounds.Bottom) / 2,
		}
	}
}

// link picks each area's label cell and sets the adjacency flags. The label
// cell is the cell closest to the centroid, with boundary cells penalized.
func (p *pass) link() {
	best := make([]int, len(p.areas))
	for id := range best {
		best[id] = -1
	}
	for c, id := range p.cells {
		if id == 0 {
			continue
		}
		a := &p.areas[id]
		x, y := p.top.XY(c)
		dist := abs(a.Centroid.X-x) + abs(a.Centroid.Y-y)

		edge := false
		for _, n := range p.top.Neighbors(c) {
			if n == board.None {
				continue
			}
			other := p.cells[n]
			if other == id {
				continue
			}
			edge = true
			if other > 0 {
				a.MarkAdjacent(other)
			}
		}
		if edge {
			dist += meta.LabelEdgePenalty
		}
		if best[id] < 0 || dist < best[id] {
			best[id] = dist
			a.LabelCell = c
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
