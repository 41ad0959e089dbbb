package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dicewars/meta"
)

// Config holds all run configuration
type Config struct {
	Board       BoardConfig       `yaml:"board"`
	Game        GameConfig        `yaml:"game"`
	Lookahead   LookaheadConfig   `yaml:"lookahead"`
	Store       StoreConfig       `yaml:"store"`
	Export      ExportConfig      `yaml:"export"`
	Experiments ExperimentsConfig `yaml:"experiments"`
	LogLevel    string            `yaml:"log_level"`
}

// BoardConfig holds the grid size in cells
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GameConfig holds session settings
type GameConfig struct {
	Players     int      `yaml:"players"`
	DicePerArea int      `yaml:"dice_per_area"`
	Seed        uint64   `yaml:"seed"` // 0 picks a time based seed
	MaxAttempts int      `yaml:"max_attempts"`
	MaxTurns    int      `yaml:"max_turns"`
	Controllers []string `yaml:"controllers"` // human|default|defensive|lookahead
}

// LookaheadConfig holds the Monte Carlo provider settings
type LookaheadConfig struct {
	Goroutines int     `yaml:"goroutines"`
	Episodes   int     `yaml:"episodes"`
	Threshold  float64 `yaml:"threshold"`
	Evaluate   string  `yaml:"evaluate"` // connectivity|resources
}

// StoreConfig holds the session database location; empty disables it
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds the visualizer hook; empty disables it
type ExportConfig struct {
	HookURL string `yaml:"hook_url"`
}

// ExperimentsConfig holds tournament settings
type ExperimentsConfig struct {
	Games  int    `yaml:"games"`
	OutDir string `yaml:"out_dir"`
}

// Default returns the configuration used without a file.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.setDefaults()

	return &cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.Board.Width == 0 {
		cfg.Board.Width = meta.XMax
	}
	if cfg.Board.Height == 0 {
		cfg.Board.Height = meta.YMax
	}
	if cfg.Game.Players == 0 {
		cfg.Game.Players = meta.Players
	}
	if cfg.Game.DicePerArea == 0 {
		cfg.Game.DicePerArea = meta.DicePerArea
	}
	if cfg.Game.MaxAttempts == 0 {
		cfg.Game.MaxAttempts = meta.MaxAttempts
	}
	if cfg.Game.MaxTurns == 0 {
		cfg.Game.MaxTurns = meta.MaxTurns
	}
	if cfg.Lookahead.Goroutines == 0 {
		cfg.Lookahead.Goroutines = 4
	}
	if cfg.Lookahead.Episodes == 0 {
		cfg.Lookahead.Episodes = 200
	}
	if cfg.Lookahead.Threshold == 0 {
		cfg.Lookahead.Threshold = 0.5
	}
	if cfg.Lookahead.Evaluate == "" {
		cfg.Lookahead.Evaluate = "connectivity"
	}
	if cfg.Experiments.Games == 0 {
		cfg.Experiments.Games = 10
	}
	if cfg.Experiments.OutDir == "" {
		cfg.Experiments.OutDir = "results"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate rejects settings no board can be generated or played with.
func (cfg *Config) Validate() error {
	if cfg.Board.Width <= 0 || cfg.Board.Height <= 0 {
		return fmt.Errorf("invalid board size %dx%d", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Game.Players < 2 || cfg.Game.Players > 8 {
		return fmt.Errorf("players must be between 2 and 8, got %d", cfg.Game.Players)
	}
	if cfg.Game.Players >= meta.AreaMax {
		return fmt.Errorf("players must be fewer than %d areas", meta.AreaMax)
	}
	if cfg.Game.DicePerArea < 1 {
		return fmt.Errorf("dice_per_area must be positive, got %d", cfg.Game.DicePerArea)
	}
	if len(cfg.Game.Controllers) > cfg.Game.Players {
		return fmt.Errorf("%d controllers for %d players", len(cfg.Game.Controllers), cfg.Game.Players)
	}
	if cfg.Lookahead.Threshold < 0 || cfg.Lookahead.Threshold > 1 {
		return fmt.Errorf("lookahead threshold must be within [0, 1], got %g", cfg.Lookahead.Threshold)
	}
	if cfg.Lookahead.Evaluate != "connectivity" && cfg.Lookahead.Evaluate != "resources" {
		return fmt.Errorf("lookahead evaluate must be connectivity or resources, got %q", cfg.Lookahead.Evaluate)
	}
	return nil
}

// Seats returns one controller name per player, padding with "default".
func (cfg *Config) Seats() []string {
	seats := make([]string, cfg.Game.Players)
	for i := range seats {
		seats[i] = "default"
		if i < len(cfg.Game.Controllers) {
			seats[i] = cfg.Game.Controllers[i]
		}
	}
	return seats
}
