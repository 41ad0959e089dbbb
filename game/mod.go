package game

// View is the read-only game state handed to decision providers. It holds
// copies, so a provider cannot change the live board, and several views can
// be evaluated in parallel.
type View struct {
	Registry *Registry
	Players  Players
	Player   int // the player to move
	Rules    Rules
}

// NewView snapshots the live state for player.
func NewView(r *Registry, players Players, player int, rules Rules) *View {
	return &View{
		Registry: r.Clone(),
		Players:  players.Clone(),
		Player:   player,
		Rules:    rules,
	}
}

// Attacks lists every legal attack of the player to move.
func (v *View) Attacks() []Action {
	var moves []Action
	for _, from := range v.Registry.Owned(v.Player) {
		if v.Registry.Area(from).Dice <= 1 {
			continue
		}
		for _, to := range v.Registry.Neighbors(from) {
			if v.Registry.Area(to).Owner != v.Player {
				moves = append(moves, Attack(from, to))
			}
		}
	}
	return moves
}

// Evaluate scores a position for player between 0 and 1.
type Evaluate func(r *Registry, player int) float64
