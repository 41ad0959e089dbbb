// Package engine runs a session: turn order, the resolution entry points
// and the self-play loop.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dicewars/agent"
	"dicewars/game"
)

var (
	ErrIllegalAttack    = errors.New("illegal attack")
	ErrIllegalPlacement = errors.New("illegal placement")
	ErrNoStock          = errors.New("no stock to place")
	ErrGameOver         = errors.New("game is over")
	ErrNotHumanTurn     = errors.New("current player is not human")
)

type Option func(e *Engine)

// WithSeed records the seed the board was generated from.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithDicePerArea records the average starting garrison the board was
// generated with.
func WithDicePerArea(dice int) Option {
	return func(e *Engine) {
		e.dicePerArea = dice
	}
}

// WithTurnHook registers fn to run after every completed turn.
func WithTurnHook(fn func(e *Engine)) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, fn)
	}
}

// Engine owns the live board of one session. It is not safe for concurrent
// use; providers only ever see copies through game.View.
type Engine struct {
	ID          uuid.UUID
	Registry    *game.Registry
	Players     game.Players
	History     *game.HistoryLog
	Baseline    game.Baseline
	Rules       game.Rules
	Controllers []agent.Controller

	rng         *rand.Rand
	seed        uint64
	dicePerArea int
	order       []int // player ids in turn order
	turn        int   // index into order
	turns       int   // completed turns
	hooks       []func(e *Engine)
}

// New seats one controller per player on a generated board.
func New(reg *game.Registry, rules game.Rules, controllers []agent.Controller, rng *rand.Rand, options ...Option) (*Engine, error) {
	if len(controllers) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(controllers))
	}
	for _, id := range reg.ActiveIDs() {
		if owner := reg.Area(id).Owner; owner < 0 || owner >= len(controllers) {
			return nil, fmt.Errorf("area %d is owned by unseated player %d", id, owner)
		}
	}

	e := &Engine{
		ID:          uuid.New(),
		Registry:    reg,
		Rules:       rules,
		Controllers: controllers,
		rng:         rng,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// StartGame shuffles the turn order, snapshots the baseline and clears the
// history and player table.
func (e *Engine) StartGame() {
	n := len(e.Controllers)
	e.order = make([]int, n)
	for i := range e.order {
		e.order[i] = i
	}
	e.rng.Shuffle(n, func(i, j int) {
		e.order[i], e.order[j] = e.order[j], e.order[i]
	})

	e.Players = game.NewPlayers(n)
	e.Players.RecomputeAll(e.Registry)
	e.History = game.NewHistoryLog()
	e.Baseline = e.Registry.Baseline()
	e.turn, e.turns = 0, 0
	if !e.Players.Alive(e.CurrentPlayer()) {
		e.advance()
	}

	log.Info().
		Str("game", e.ID.String()).
		Ints("order", e.order).
		Int("areas", e.Registry.ActiveCount()).
		Msg("game started")
}

// CurrentPlayer is the id of the player to move.
func (e *Engine) CurrentPlayer() int {
	return e.order[e.turn]
}

// Order is the turn order fixed by StartGame.
func (e *Engine) Order() []int {
	out := make([]int, len(e.order))
	copy(out, e.order)
	return out
}

// Turns is the number of completed turns.
func (e *Engine) Turns() int {
	return e.turns
}

func (e *Engine) Seed() uint64 {
	return e.seed
}

func (e *Engine) DicePerArea() int {
	return e.dicePerArea
}

// View snapshots the position for the player to move.
func (e *Engine) View() *game.View {
	return game.NewView(e.Registry, e.Players, e.CurrentPlayer(), e.Rules)
}

// Winner returns the player owning every active area, or game.Unowned.
func (e *Engine) Winner() int {
	winner := game.Unowned
	for _, id := range e.Registry.ActiveIDs() {
		owner := e.Registry.Area(id).Owner
		switch {
		case winner == game.Unowned:
			winner = owner
		case owner != winner:
			return game.Unowned
		}
	}
	return winner
}

// Record appends a history entry and refreshes the stats of the affected
// players.
func (e *Engine) Record(from, to int, success bool, affected ...int) {
	e.History.Append(from, to, success)
	for _, p := range affected {
		if p >= 0 && p < len(e.Players) {
			e.Players.Recompute(e.Registry, p)
		}
	}
}

// ResolveAttack rolls an attack of the current player from one area into an
// adjacent enemy area.
func (e *Engine) ResolveAttack(from, to int) (bool, error) {
	if e.Winner() != game.Unowned {
		return false, ErrGameOver
	}
	src, err := e.Registry.Lookup(from)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIllegalAttack, err)
	}
	dst, err := e.Registry.Lookup(to)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrIllegalAttack, err)
	}

	player := e.CurrentPlayer()
	switch {
	case src.Owner != player:
		return false, fmt.Errorf("%w: area %d is not owned by player %d", ErrIllegalAttack, from, player)
	case dst.Owner == player:
		return false, fmt.Errorf("%w: area %d is owned by the attacker", ErrIllegalAttack, to)
	case src.Dice <= 1:
		return false, fmt.Errorf("%w: area %d has a single die", ErrIllegalAttack, from)
	case !e.Registry.IsAdjacent(from, to):
		return false, fmt.Errorf("%w: areas %d and %d are not adjacent", ErrIllegalAttack, from, to)
	}

	defender := dst.Owner
	attack := e.Rules.Roll(e.rng, src.Dice)
	defence := e.Rules.Roll(e.rng, dst.Dice)
	success := e.Rules.IsAttackSuccessful(attack, defence)
	e.Rules.ApplyAttack(src, dst, success)
	e.Record(from, to, success, player, defender)

	log.Debug().
		Int("player", player).
		Int("from", from).
		Int("to", to).
		Ints("attack", attack).
		Ints("defence", defence).
		Bool("success", success).
		Msg("attack resolved")
	return success, nil
}

// PlaceReinforcement moves up to count dice from the current player's stock
// into one of its areas and returns how many were placed.
func (e *Engine) PlaceReinforcement(area, count int) (int, error) {
	if e.Winner() != game.Unowned {
		return 0, ErrGameOver
	}
	a, err := e.Registry.Lookup(area)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIllegalPlacement, err)
	}

	player := e.CurrentPlayer()
	stock := &e.Players[player].Stock
	switch {
	case a.Owner != player:
		return 0, fmt.Errorf("%w: area %d is not owned by player %d", ErrIllegalPlacement, area, player)
	case count < 1:
		return 0, fmt.Errorf("%w: count %d", ErrIllegalPlacement, count)
	case a.Dice >= e.Rules.MaxDice():
		return 0, fmt.Errorf("%w: area %d is full", ErrIllegalPlacement, area)
	case *stock == 0:
		return 0, ErrNoStock
	}

	placed := 0
	for placed < count && *stock > 0 && a.Dice < e.Rules.MaxDice() {
		a.Dice++
		*stock--
		placed++
		e.History.Append(area, 0, true)
	}
	e.Players.Recompute(e.Registry, player)

	log.Debug().Int("player", player).Int("area", area).Int("placed", placed).Msg("reinforced")
	return placed, nil
}

// EndTurn supplies the current player and passes the turn to the next
// player still owning an area.
func (e *Engine) EndTurn() error {
	if e.Winner() != game.Unowned {
		return ErrGameOver
	}

	player := e.CurrentPlayer()
	p := &e.Players[player]
	p.Stock = min(p.Stock+game.LargestTerritory(e.Registry, player), e.Rules.StockMax())
	supplied := e.supply(player)
	e.Players.Recompute(e.Registry, player)

	log.Debug().
		Int("player", player).
		Int("supplied", supplied).
		Int("stock", p.Stock).
		Msg("turn ended")

	e.turns++
	e.advance()
	for _, hook := range e.hooks {
		hook(e)
	}
	return nil
}

// supply spends the stock one die at a time on random owned areas that are
// not full.
func (e *Engine) supply(player int) int {
	p := &e.Players[player]
	supplied := 0
	for p.Stock > 0 {
		var open []int
		for _, id := range e.Registry.Owned(player) {
			if e.Registry.Area(id).Dice < e.Rules.MaxDice() {
				open = append(open, id)
			}
		}
		if len(open) == 0 {
			break
		}
		id := open[e.rng.IntN(len(open))]
		e.Registry.Area(id).Dice++
		p.Stock--
		supplied++
		e.History.Append(id, 0, true)
	}
	return supplied
}

func (e *Engine) advance() {
	for range e.order {
		e.turn = (e.turn + 1) % len(e.order)
		if e.Players.Alive(e.CurrentPlayer()) {
			return
		}
	}
}
