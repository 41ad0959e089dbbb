package game

import (
	"math/rand/v2"

	"dicewars/meta"
)

type StandardRules struct {
	MaxAreaDice int
	MaxStock    int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		MaxAreaDice: meta.MaxDice,
		MaxStock:    meta.StockMax,
	}
}

func (sr *StandardRules) MaxDice() int {
	return sr.MaxAreaDice
}

func (sr *StandardRules) StockMax() int {
	return sr.MaxStock
}

// Roll throws one six sided die per garrison die.
func (sr *StandardRules) Roll(rng *rand.Rand, dice int) []int {
	rolls := make([]int, dice)
	for i := range rolls {
		rolls[i] = rng.IntN(6) + 1
	}
	return rolls
}

// IsAttackSuccessful compares sums; ties go to the defender.
func (sr *StandardRules) IsAttackSuccessful(attackerRolls, defenderRolls []int) bool {
	return sum(attackerRolls) > sum(defenderRolls)
}

// ApplyAttack leaves one die behind on the attacking area. A successful
// attacker moves the rest into the conquered area.
func (sr *StandardRules) ApplyAttack(from, to *Area, success bool) {
	if success {
		to.Owner = from.Owner
		to.Dice = from.Dice - 1
	}
	from.Dice = 1
}

func sum(rolls []int) int {
	total := 0
	for _, r := range rolls {
		total += r
	}
	return total
}
