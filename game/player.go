package game

// Player holds the per seat statistics derived from the board, plus the
// reinforcement stock which only the turn engine changes.
type Player struct {
	Areas            int `json:"areas"`
	Dice             int `json:"dice"`
	LargestTerritory int `json:"largest_territory"`
	Rank             int `json:"rank"` // 0 = most dice
	Stock            int `json:"stock"`
}

// Players is the player table, indexed by player id.
type Players []Player

// NewPlayers allocates fresh records for n seats.
func NewPlayers(n int) Players {
	return make(Players, n)
}

// Recompute refreshes one player's counts from the board and re-ranks the
// table.
func (ps Players) Recompute(r *Registry, player int) {
	ps.tally(r, player)
	ps.rank()
}

// RecomputeAll refreshes every player.
func (ps Players) RecomputeAll(r *Registry) {
	for p := range ps {
		ps.tally(r, p)
	}
	ps.rank()
}

func (ps Players) tally(r *Registry, player int) {
	p := &ps[player]
	p.Areas, p.Dice = 0, 0
	for _, id := range r.Owned(player) {
		p.Areas++
		p.Dice += r.areas[id].Dice
	}
	p.LargestTerritory = LargestTerritory(r, player)
}

// rank sets each player's rank to the number of players holding strictly
// more dice.
func (ps Players) rank() {
	for i := range ps {
		rank := 0
		for j := range ps {
			if ps[j].Dice > ps[i].Dice {
				rank++
			}
		}
		ps[i].Rank = rank
	}
}

// Alive reports whether player still owns an area.
func (ps Players) Alive(player int) bool {
	return ps[player].Areas > 0
}

// Clone copies the table.
func (ps Players) Clone() Players {
	out := make(Players, len(ps))
	copy(out, ps)
	return out
}
