package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"dicewars/experiments/metrics"
	"dicewars/game"
)

// searchReporter is implemented by providers that record search metrics.
type searchReporter interface {
	LastMetric() metrics.SearchMetric
}

// DispatchTurn asks the current player's controller for its next action.
// It reports false for human seats and finished games.
func (e *Engine) DispatchTurn() (game.Action, bool) {
	if e.Winner() != game.Unowned {
		return game.Action{}, false
	}
	return e.Controllers[e.CurrentPlayer()].Decide(e.View())
}

// Apply resolves an action for the current player.
func (e *Engine) Apply(action game.Action) error {
	switch action.Type {
	case game.AttackAction:
		_, err := e.ResolveAttack(action.From, action.To)
		return err
	case game.ReinforceAction:
		_, err := e.PlaceReinforcement(action.Area, action.Count)
		return err
	case game.EndTurnAction:
		return e.EndTurn()
	default:
		return fmt.Errorf("unknown action type %d", action.Type)
	}
}

// Submit applies an action delivered from outside for a human seat.
func (e *Engine) Submit(action game.Action) error {
	if !e.Controllers[e.CurrentPlayer()].IsHuman() {
		return ErrNotHumanTurn
	}
	return e.Apply(action)
}

// Run plays automated seats until a player owns every area, a human seat is
// to move, or maxTurns turns have been completed. An illegal action ends the
// offending player's turn.
func (e *Engine) Run(maxTurns int) (metrics.GameMetric, []metrics.MoveMetric) {
	gm := metrics.GameMetric{
		Seed:           e.seed,
		StartingPlayer: e.CurrentPlayer(),
		Winner:         game.Unowned,
		Areas:          e.Registry.ActiveCount(),
		StartTime:      time.Now(),
	}
	var moves []metrics.MoveMetric

	for e.turns < maxTurns {
		player := e.CurrentPlayer()
		action, ok := e.DispatchTurn()
		if !ok {
			break
		}

		if reporter, ok := e.Controllers[player].Provider.(searchReporter); ok {
			if m := reporter.LastMetric(); m.Candidates > 0 {
				moves = append(moves, metrics.MoveMetric{Step: gm.TotalActions, Player: player, SearchMetric: m})
			}
		}

		if err := e.Apply(action); err != nil {
			log.Warn().Err(err).Int("player", player).Str("action", action.Type.String()).Msg("illegal action, ending turn")
			if err := e.EndTurn(); err != nil {
				break
			}
		}
		gm.TotalActions++
	}

	gm.Winner = e.Winner()
	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.TotalTurns = e.turns

	log.Info().
		Str("game", e.ID.String()).
		Int("winner", gm.Winner).
		Int("turns", gm.TotalTurns).
		Int("actions", gm.TotalActions).
		Msg("game stopped")
	return gm, moves
}
