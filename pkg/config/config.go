// Package config loads the player settings (search limits, heuristic weights,
// game parameters) from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/heuristic"
	"github.com/IlikeChooros/go-2048/pkg/montecarlo"
	"github.com/IlikeChooros/go-2048/pkg/rng"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	SearchesPerMove int   `yaml:"searches_per_move"`
	RolloutDepth    int   `yaml:"rollout_depth"`
	Threads         int   `yaml:"threads"`
	MovetimeMs      int   `yaml:"movetime_ms"`
	Seed            int64 `yaml:"seed"`

	SpawnFourProb float64 `yaml:"spawn_four_prob"`

	EvaluatorName string            `yaml:"evaluator"`
	Weights       heuristic.Weights `yaml:"weights"`
	// Optional 4x4 matrix, row-major; empty means all ones
	PositionWeights [][]float64 `yaml:"position_weights,omitempty"`
}

func Default() Config {
	return Config{
		SearchesPerMove: montecarlo.DefaultSearchesPerMove,
		RolloutDepth:    montecarlo.DefaultDepth,
		Threads:         runtime.NumCPU(),
		MovetimeMs:      montecarlo.DefaultMovetimeLimit,
		Seed:            montecarlo.DefaultSeed,
		SpawnFourProb:   game.DefaultFourProbability,
		EvaluatorName:   heuristic.NameAdvanced,
		Weights:         heuristic.DefaultWeights(),
	}
}

// Read and parse the YAML file at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse YAML on top of the defaults, keys missing from the document keep their default value.
// The result is validated
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c Config) Validate() error {
	var errs []error
	if c.SearchesPerMove < 1 {
		errs = append(errs, fmt.Errorf("searches_per_move must be positive, got %d", c.SearchesPerMove))
	}
	if c.RolloutDepth < 1 {
		errs = append(errs, fmt.Errorf("rollout_depth must be positive, got %d", c.RolloutDepth))
	}
	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be positive, got %d", c.Threads))
	}
	if c.SpawnFourProb < 0 || c.SpawnFourProb > 1 {
		errs = append(errs, fmt.Errorf("spawn_four_prob must be in [0, 1], got %v", c.SpawnFourProb))
	}
	if _, err := heuristic.ByName(c.EvaluatorName, c.Weights, heuristic.UniformPositionWeights()); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.positions(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) positions() (heuristic.PositionWeights, error) {
	if len(c.PositionWeights) == 0 {
		return heuristic.UniformPositionWeights(), nil
	}

	var w heuristic.PositionWeights
	if len(c.PositionWeights) != game.Size {
		return w, fmt.Errorf("position_weights must have %d rows, got %d", game.Size, len(c.PositionWeights))
	}
	for r, row := range c.PositionWeights {
		if len(row) != game.Size {
			return w, fmt.Errorf("position_weights row %d must have %d values, got %d", r, game.Size, len(row))
		}
		copy(w[r*game.Size:], row)
	}
	return w, nil
}

// Search limits described by the config
func (c Config) Limits() *montecarlo.Limits {
	return montecarlo.DefaultLimits().
		SetSearches(c.SearchesPerMove).
		SetDepth(c.RolloutDepth).
		SetThreads(c.Threads).
		SetMovetime(c.MovetimeMs).
		SetSeed(c.Seed)
}

// Build the configured evaluator
func (c Config) Evaluator() (heuristic.Evaluator, error) {
	positions, err := c.positions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return heuristic.ByName(c.EvaluatorName, c.Weights, positions)
}

// Create a selector with the configured evaluator and limits
func (c Config) Selector() (*montecarlo.Selector, error) {
	evaluator, err := c.Evaluator()
	if err != nil {
		return nil, err
	}
	selector := montecarlo.NewSelector(evaluator)
	selector.SetLimits(c.Limits())
	return selector, nil
}

// Create a new game with the configured spawn probability, r == nil means an unseeded game
func (c Config) NewEngine(r rng.Source) *game.Engine {
	engine := game.NewEngine(r)
	engine.SetFourProbability(c.SpawnFourProb)
	engine.Reset()
	return engine
}
