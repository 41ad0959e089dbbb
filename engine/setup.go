package engine

import (
	"fmt"
	"math/rand/v2"

	"dicewars/agent"
	"dicewars/board"
	"dicewars/config"
	"dicewars/game"
	"dicewars/mapgen"
)

// FromConfig generates a board from seed and seats the configured
// controllers on it. The returned engine is started. Map generation and play
// share one random source, so a seed reproduces the whole session.
func FromConfig(cfg *config.Config, seed uint64, options ...Option) (*Engine, error) {
	top, err := board.NewTopology(cfg.Board.Width, cfg.Board.Height)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	reg, _, err := mapgen.NewGenerator(top, rng,
		mapgen.WithPlayers(cfg.Game.Players),
		mapgen.WithDicePerArea(cfg.Game.DicePerArea),
	).GenerateWithRetry(cfg.Game.MaxAttempts)
	if err != nil {
		return nil, fmt.Errorf("generate map: %w", err)
	}

	lookahead, err := LookaheadOptions(cfg)
	if err != nil {
		return nil, err
	}
	seats := cfg.Seats()
	controllers := make([]agent.Controller, len(seats))
	for i, name := range seats {
		controllers[i], err = agent.FromName(name, seed+uint64(i), lookahead...)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
	}

	options = append([]Option{WithSeed(seed), WithDicePerArea(cfg.Game.DicePerArea)}, options...)
	e, err := New(reg, game.NewStandardRules(), controllers, rng, options...)
	if err != nil {
		return nil, err
	}
	e.StartGame()
	return e, nil
}

// LookaheadOptions translates the lookahead section of cfg.
func LookaheadOptions(cfg *config.Config) ([]agent.Option, error) {
	evaluate, err := agent.EvaluationFromName(cfg.Lookahead.Evaluate)
	if err != nil {
		return nil, err
	}
	return []agent.Option{
		agent.WithGoroutines(cfg.Lookahead.Goroutines),
		agent.WithEpisodes(cfg.Lookahead.Episodes),
		agent.WithThreshold(cfg.Lookahead.Threshold),
		agent.WithEvaluationFn(evaluate),
		agent.WithMetrics(),
	}, nil
}
