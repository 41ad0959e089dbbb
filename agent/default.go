package agent

import "dicewars/game"

// Default attacks from the largest stack onto any neighbour it outnumbers,
// or onto an equal neighbour once the stack is full.
type Default struct{}

func (Default) Decide(view *game.View) game.Action {
	best := game.EndTurn()
	bestGap := -1
	for _, move := range view.Attacks() {
		from := view.Registry.Area(move.From)
		to := view.Registry.Area(move.To)
		gap := from.Dice - to.Dice
		if gap < 0 || (gap == 0 && from.Dice < view.Rules.MaxDice()) {
			continue
		}
		if gap > bestGap {
			best, bestGap = move, gap
		}
	}
	return best
}
