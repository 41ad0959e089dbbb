package game

// EvaluateResources scores player by its share of areas and dice on the
// board.
func EvaluateResources(r *Registry, player int) float64 {
	areaScore, diceScore := resourceScores(r, player)
	return (areaScore + diceScore) / 2
}

// EvaluateConnectivity adds the player's largest territory, which drives
// supply, to the resource score.
func EvaluateConnectivity(r *Registry, player int) float64 {
	areaScore, diceScore := resourceScores(r, player)
	territory := float64(LargestTerritory(r, player))
	connectivityScore := share(territory, float64(r.ActiveCount()))
	return (areaScore + diceScore + connectivityScore) / 3
}

func resourceScores(r *Registry, player int) (areaScore, diceScore float64) {
	var areas, dice, totalAreas, totalDice float64
	for _, id := range r.ActiveIDs() {
		a := r.Area(id)
		totalAreas++
		totalDice += float64(a.Dice)
		if a.Owner == player {
			areas++
			dice += float64(a.Dice)
		}
	}
	return share(areas, totalAreas), share(dice, totalDice)
}

// share normalizes value against total to [0, 1]
func share(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total
}
