package game

import "fmt"

// Baseline is the (owner, dice) of every area right after setup, indexed by
// area id. A baseline plus a history prefix reproduces any later position.
type Baseline struct {
	Owners []int `json:"owners"`
	Dice   []int `json:"dice"`
}

// Baseline snapshots owners and dice of all areas.
func (r *Registry) Baseline() Baseline {
	b := Baseline{
		Owners: make([]int, len(r.areas)),
		Dice:   make([]int, len(r.areas)),
	}
	for id, a := range r.areas {
		b.Owners[id] = a.Owner
		b.Dice[id] = a.Dice
	}
	return b
}

// Restore resets owners and dice to a baseline taken from the same board.
func (r *Registry) Restore(b Baseline) error {
	if len(b.Owners) != len(r.areas) || len(b.Dice) != len(r.areas) {
		return fmt.Errorf("baseline covers %d areas, registry has %d", len(b.Owners), len(r.areas))
	}
	for id := range r.areas {
		r.areas[id].Owner = b.Owners[id]
		r.areas[id].Dice = b.Dice[id]
	}
	return nil
}

// Replay returns a copy of reg set to the baseline with entries applied in
// order.
func Replay(reg *Registry, base Baseline, entries []Entry, rules Rules) (*Registry, error) {
	out := reg.Clone()
	if err := out.Restore(base); err != nil {
		return nil, err
	}
	for i, e := range entries {
		from, err := out.Lookup(e.From)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if e.IsSupply() {
			if e.Success && from.Dice < rules.MaxDice() {
				from.Dice++
			}
			continue
		}
		to, err := out.Lookup(e.To)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		rules.ApplyAttack(from, to, e.Success)
	}
	return out, nil
}
