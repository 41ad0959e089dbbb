package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"dicewars/agent"
	"dicewars/config"
	"dicewars/engine"
	"dicewars/experiments"
	"dicewars/export"
	"dicewars/game"
	"dicewars/store"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", "play", "One of play, tournament, replay, list, serve")
	sessionID := flag.String("session", "", "Session id to replay")
	steps := flag.Int("steps", -1, "Number of history entries to replay, -1 for all")
	addr := flag.String("addr", ":8080", "Listen address of the agent server")
	provider := flag.String("provider", "lookahead", "Provider served by the agent server")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	switch *mode {
	case "play":
		err = play(cfg)
	case "tournament":
		err = tournament(cfg)
	case "replay":
		err = replay(cfg, *sessionID, *steps)
	case "list":
		err = list(cfg)
	case "serve":
		err = serve(cfg, *addr, *provider)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func openStore(cfg *config.Config) (*store.DB, error) {
	if cfg.Store.Path == "" {
		return nil, nil
	}
	return store.Open(cfg.Store.Path)
}

func play(cfg *config.Config) error {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	var options []engine.Option
	if cfg.Export.HookURL != "" {
		hook := export.NewHook(cfg.Export.HookURL)
		options = append(options, engine.WithTurnHook(func(e *engine.Engine) {
			if err := hook.Push(context.Background(), export.FromEngine(e)); err != nil {
				log.Warn().Err(err).Msg("failed to push board")
			}
		}))
	}

	e, err := engine.FromConfig(cfg, seed, options...)
	if err != nil {
		return err
	}
	log.Info().Uint64("seed", seed).Msg("board generated")

	in := bufio.NewScanner(os.Stdin)
	for {
		e.Run(cfg.Game.MaxTurns)
		if e.Winner() != game.Unowned || e.Turns() >= cfg.Game.MaxTurns {
			break
		}

		player := e.CurrentPlayer()
		fmt.Printf("player %d (%d dice, %d in stock): attack FROM TO | reinforce AREA COUNT | end\n",
			player, e.Players[player].Dice, e.Players[player].Stock)
		if !in.Scan() {
			break
		}
		action, err := game.ParseAction(in.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := e.Submit(action); err != nil {
			fmt.Println(err)
		}
	}

	standings(e.Players)

	db, err := openStore(cfg)
	if err != nil || db == nil {
		return err
	}
	defer db.Close()
	if err := db.SaveSession(store.FromEngine(e)); err != nil {
		return err
	}
	log.Info().Str("session", e.ID.String()).Msg("session saved")
	return nil
}

func standings(players game.Players) {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return players[a].Rank - players[b].Rank
	})
	for _, p := range order {
		log.Info().Msgf("%s: player %d with %d areas and %d dice",
			humanize.Ordinal(players[p].Rank+1), p, players[p].Areas, players[p].Dice)
	}
}

func tournament(cfg *config.Config) error {
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = uint64(time.Now().UnixNano())
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	result, err := experiments.RunTournament(cfg, db)
	if err != nil {
		return err
	}
	log.Info().Str("dir", result.Dir).Msg("records written")
	return nil
}

// replay regenerates a stored session's board from its seed and applies a
// prefix of its history, printing the resulting board as JSON.
func replay(cfg *config.Config, id string, steps int) error {
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("replay needs store.path")
	}
	defer db.Close()

	s, err := db.LoadSession(id)
	if err != nil {
		return err
	}
	e, err := engine.FromConfig(s.Config(cfg), s.Seed)
	if err != nil {
		return err
	}
	if !slices.Equal(e.Baseline.Owners, s.Baseline.Owners) || !slices.Equal(e.Baseline.Dice, s.Baseline.Dice) {
		return fmt.Errorf("session %s: config does not reproduce the stored board", id)
	}

	entries := s.History
	if steps >= 0 && steps < len(entries) {
		entries = entries[:steps]
	}
	reg, err := game.Replay(e.Registry, s.Baseline, entries, e.Rules)
	if err != nil {
		return err
	}
	players := game.NewPlayers(s.Players)
	players.RecomputeAll(reg)

	doc := export.FromRegistry(reg, players)
	doc.Session = s.ID
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func list(cfg *config.Config) error {
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("list needs store.path")
	}
	defer db.Close()

	sessions, err := db.ListSessions(20)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Printf("%s  seed=%d  players=%d  winner=%d  turns=%d  %s\n",
			s.ID, s.Seed, s.Players, s.Winner, s.Turns, humanize.Time(s.CreatedAt))
	}
	return nil
}

// serve exposes one provider to remote seats of other processes.
func serve(cfg *config.Config, addr, name string) error {
	options, err := engine.LookaheadOptions(cfg)
	if err != nil {
		return err
	}
	c, err := agent.FromName(name, cfg.Game.Seed, options...)
	if err != nil {
		return err
	}
	if c.IsHuman() {
		return errors.New("cannot serve a human seat")
	}

	log.Info().Str("addr", addr).Str("provider", name).Msg("starting agent server")
	return http.ListenAndServe(addr, agent.NewServer(c.Provider))
}
