package mapgen

import "dicewars/game"

// assignOwners deals areas round robin, picking a random unowned area for
// each player in turn.
func (p *pass) assignOwners() {
	player := 0
	unowned := make([]int, 0, len(p.areas))
	for {
		unowned = unowned[:0]
		for id := 1; id < len(p.areas); id++ {
			if p.areas[id].Active() && p.areas[id].Owner == game.Unowned {
				unowned = append(unowned, id)
			}
		}
		if len(unowned) == 0 {
			return
		}
		p.areas[unowned[p.rng.IntN(len(unowned))]].Owner = player
		player = (player + 1) % p.players
	}
}

// garrison puts one die on every area, then hands out the remaining average
// dice one at a time, round robin by player, to random areas below the cap.
// It stops early once a player has nowhere to put a die.
func (p *pass) garrison() {
	active := 0
	for id := 1; id < len(p.areas); id++ {
		if p.areas[id].Active() {
			p.areas[id].Dice = 1
			active++
		}
	}

	extra := active * (p.dicePerArea - 1)
	player := 0
	eligible := make([]int, 0, len(p.areas))
	for i := 0; i < extra; i++ {
		eligible = eligible[:0]
		for id := 1; id < len(p.areas); id++ {
			a := &p.areas[id]
			if a.Active() && a.Owner == player && a.Dice < p.maxDice {
				eligible = append(eligible, id)
			}
		}
		if len(eligible) == 0 {
			return
		}
		p.areas[eligible[p.rng.IntN(len(eligible))]].Dice++
		player = (player + 1) % p.players
	}
}
