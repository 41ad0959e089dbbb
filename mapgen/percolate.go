package mapgen

import (
	"dicewars/board"
	"dicewars/meta"
)

// percolate grows area id from seed. It claims the lowest ranked frontier
// cell until target cells are claimed or the frontier is empty, then absorbs
// whatever frontier is left and marks the cells around it as reachable seeds
// for the next area. It returns the number of claimed cells.
func (p *pass) percolate(seed, target, id int) int {
	if target < meta.MinGrowth {
		target = meta.MinGrowth
	}
	clear(p.frontier)

	pos := seed
	count := 0
	for {
		p.cells[pos] = id
		count++
		for _, n := range p.top.Neighbors(pos) {
			if n != board.None {
				p.frontier[n] = true
			}
		}

		next := p.lowest(p.frontier)
		if next == board.None || count >= target {
			break
		}
		pos = next
	}

	for c, marked := range p.frontier {
		if !marked || p.cells[c] > 0 {
			continue
		}
		p.cells[c] = id
		count++
		for _, n := range p.top.Neighbors(c) {
			if n != board.None {
				p.reachable[n] = true
			}
		}
	}
	return count
}

// fillPockets absorbs unassigned cells that are closed in by a single area.
func (p *pass) fillPockets() {
	for c := range p.cells {
		if p.cells[c] > 0 {
			continue
		}
		owner := 0
		enclosed := true
		for _, n := range p.top.Neighbors(c) {
			if n == board.None {
				continue
			}
			id := p.cells[n]
			if id == 0 || (owner != 0 && id != owner) {
				enclosed = false
				break
			}
			owner = id
		}
		if enclosed && owner != 0 {
			p.cells[c] = owner
		}
	}
}
