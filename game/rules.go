package game

import "math/rand/v2"

// Rules is the arithmetic behind attack resolution and supply.
type Rules interface {
	MaxDice() int
	StockMax() int
	Roll(rng *rand.Rand, dice int) []int
	IsAttackSuccessful(attackerRolls, defenderRolls []int) bool
	// ApplyAttack moves dice and ownership once the outcome is known.
	ApplyAttack(from, to *Area, success bool)
}
