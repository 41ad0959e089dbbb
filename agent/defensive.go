package agent

import "dicewars/game"

// Defensive only attacks with a clear dice advantage, or when taking the
// target joins its territory into a larger group.
type Defensive struct{}

func (Defensive) Decide(view *game.View) game.Action {
	reg := view.Registry
	current := game.LargestTerritory(reg, view.Player)

	best := game.EndTurn()
	bestTerritory, bestGap := current, 0
	for _, move := range view.Attacks() {
		from := reg.Area(move.From)
		to := reg.Area(move.To)
		gap := from.Dice - to.Dice
		if gap <= 0 {
			continue
		}

		territory := conquered(reg, move, view.Player)
		if gap < 2 && territory <= current {
			continue
		}
		if territory > bestTerritory || (territory == bestTerritory && gap > bestGap) {
			best, bestTerritory, bestGap = move, territory, gap
		}
	}
	return best
}

// conquered is the player's largest territory if move succeeds.
func conquered(reg *game.Registry, move game.Action, player int) int {
	next := reg.Clone()
	next.Area(move.To).Owner = player
	return game.LargestTerritory(next, player)
}
