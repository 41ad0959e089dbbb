package game

// buildRegistry creates a hand made board: owners maps active area ids to
// their owner and edges are directed adjacency flags.
func buildRegistry(areaMax int, owners map[int]int, edges [][2]int) *Registry {
	areas := make([]Area, areaMax)
	for id := range areas {
		areas[id] = NewArea(id, areaMax)
	}
	for id, owner := range owners {
		areas[id].Size = 6
		areas[id].Owner = owner
		areas[id].Dice = 1
	}
	for _, e := range edges {
		areas[e[0]].MarkAdjacent(e[1])
	}
	return NewRegistry(nil, nil, areas)
}
