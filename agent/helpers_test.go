package agent

import "dicewars/game"

type seat struct {
	owner int
	dice  int
}

// buildView creates a hand made board with symmetric edges and returns the
// view of player.
func buildView(player int, seats map[int]seat, edges [][2]int) *game.View {
	const areaMax = 8
	areas := make([]game.Area, areaMax)
	for id := range areas {
		areas[id] = game.NewArea(id, areaMax)
	}
	for id, s := range seats {
		areas[id].Size = 6
		areas[id].Owner = s.owner
		areas[id].Dice = s.dice
	}
	for _, e := range edges {
		areas[e[0]].MarkAdjacent(e[1])
		areas[e[1]].MarkAdjacent(e[0])
	}
	reg := game.NewRegistry(nil, nil, areas)
	players := game.NewPlayers(2)
	players.RecomputeAll(reg)
	return game.NewView(reg, players, player, game.NewStandardRules())
}
