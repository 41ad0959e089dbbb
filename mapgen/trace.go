package mapgen

import (
	"fmt"

	"dicewars/board"
	"dicewars/game"
)

// traceAll records one boundary walk per active area, starting from the
// first cell in board order that faces another area or the board edge.
func (p *pass) traceAll() error {
	for c, id := range p.cells {
		if id == 0 || p.areas[id].Trace != nil {
			continue
		}
		for d := board.Direction(0); d < board.Directions; d++ {
			n := p.top.Neighbor(c, d)
			if n != board.None && p.cells[n] == id {
				continue
			}
			trace, err := p.trace(c, d)
			if err != nil {
				return err
			}
			p.areas[id].Trace = trace
			break
		}
	}
	return nil
}

// trace follows the boundary of the area holding start, keeping the area on
// one side. From (c, d) it turns one step; if that neighbour belongs to the
// area it steps onto it and turns back two. The walk ends when the start
// edge comes round again, which is recorded as the last element.
func (p *pass) trace(start int, dir board.Direction) ([]game.Edge, error) {
	id := p.cells[start]
	c, d := start, dir
	edges := []game.Edge{{Cell: c, Dir: d}}
	for i := 0; i < p.traceLimit; i++ {
		d = board.Rotate(d, 1)
		if n := p.top.Neighbor(c, d); n != board.None && p.cells[n] == id {
			c = n
			d = board.Rotate(d, -2)
		}
		edges = append(edges, game.Edge{Cell: c, Dir: d})
		if c == start && d == dir {
			return edges, nil
		}
	}
	return nil, fmt.Errorf("%w: area %d after %d steps", ErrTraceOverrun, id, p.traceLimit)
}
