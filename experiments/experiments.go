package experiments

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"dicewars/config"
	"dicewars/engine"
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/store"
)

// Result summarizes a tournament.
type Result struct {
	Dir        string // folder holding the CSV records
	Games      int
	Wins       []int // per seat
	Unfinished int   // games stopped by the turn cap
	Actions    int
}

// RunTournament plays cfg.Experiments.Games automated games with seeds
// seed, seed+1, ... and writes game and move records. Sessions are saved to
// db when it is not nil.
func RunTournament(cfg *config.Config, db *store.DB) (*Result, error) {
	seats := cfg.Seats()
	if slices.Contains(seats, "human") {
		return nil, fmt.Errorf("tournaments cannot seat human players")
	}
	agents := strings.Join(seats, "/")

	result := &Result{Wins: make([]int, len(seats))}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting tournament of %d games between %s...", cfg.Experiments.Games, agents)

	for i := 0; i < cfg.Experiments.Games; i++ {
		seed := cfg.Game.Seed + uint64(i)
		e, err := engine.FromConfig(cfg, seed)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}

		gameMetric, moveMetrics := e.Run(cfg.Game.MaxTurns)
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Agents:     agents,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}

		result.Games++
		result.Actions += gameMetric.TotalActions
		if gameMetric.Winner == game.Unowned {
			result.Unfinished++
		} else {
			result.Wins[gameMetric.Winner]++
		}

		if db != nil {
			if err := db.SaveSession(store.FromEngine(e)); err != nil {
				return nil, fmt.Errorf("save game %d: %w", i+1, err)
			}
		}

		log.Info().Msgf("completed game %d of %d with winner %d after %d turns", i+1, cfg.Experiments.Games, gameMetric.Winner, gameMetric.TotalTurns)
	}

	writer, err := metrics.NewWriter(cfg.Experiments.OutDir, "tournament")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	result.Dir = writer.Dir()

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	result.log(seats)
	return result, nil
}

func (r *Result) log(seats []string) {
	log.Info().Msgf("completed tournament: %s games, %s actions, %d unfinished",
		humanize.Comma(int64(r.Games)), humanize.Comma(int64(r.Actions)), r.Unfinished)

	order := make([]int, len(seats))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return r.Wins[b] - r.Wins[a]
	})
	for place, seat := range order {
		log.Info().Msgf("%s: seat %d (%s) with %s wins", humanize.Ordinal(place+1), seat, seats[seat], humanize.Comma(int64(r.Wins[seat])))
	}
}
