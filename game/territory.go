package game

// LargestTerritory returns the number of areas in the biggest group of
// player's areas connected through adjacency, or 0 if the player owns none.
//
// Groups are found by label propagation: every area starts with its own id
// as label, and any adjacent pair of the player's areas with different
// labels is merged to the smaller label until a full scan makes no change.
// With at most AreaMax areas this stays cheap.
func LargestTerritory(r *Registry, player int) int {
	n := len(r.areas)
	owned := func(id int) bool {
		a := &r.areas[id]
		return a.Active() && a.Owner == player
	}

	labels := make([]int, n)
	for id := range labels {
		labels[id] = id
	}

	for merged := true; merged; {
		merged = false
	scan:
		for i := 1; i < n; i++ {
			if !owned(i) {
				continue
			}
			for j := 1; j < n; j++ {
				if !owned(j) || labels[i] == labels[j] {
					continue
				}
				if !r.areas[i].RawAdjacent(j) && !r.areas[j].RawAdjacent(i) {
					continue
				}
				if labels[i] > labels[j] {
					labels[i] = labels[j]
				} else {
					labels[j] = labels[i]
				}
				merged = true
				break scan
			}
		}
	}

	counts := make([]int, n)
	largest := 0
	for id := 1; id < n; id++ {
		if !owned(id) {
			continue
		}
		counts[labels[id]]++
		if counts[labels[id]] > largest {
			largest = counts[labels[id]]
		}
	}
	return largest
}
