package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/heuristic"
	"github.com/IlikeChooros/go-2048/pkg/montecarlo"
	"github.com/IlikeChooros/go-2048/pkg/rng"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
searches_per_move: 100
seed: 7
weights:
  empty: 2.5
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.SearchesPerMove = 100
	want.Seed = 7
	want.Weights.Empty = 2.5
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "searches_per_move: [1, 2"},
		{"zero searches", "searches_per_move: 0"},
		{"negative depth", "rollout_depth: -1"},
		{"no threads", "threads: 0"},
		{"probability", "spawn_four_prob: 1.5"},
		{"evaluator", "evaluator: neural"},
		{"position rows", "position_weights: [[1, 2, 3, 4]]"},
		{"position cols", "position_weights: [[1], [2], [3], [4]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.EvaluatorName = heuristic.NameEnhanced
	cfg.PositionWeights = [][]float64{{4, 3, 2, 1}, {3, 2, 1, 0}, {2, 1, 0, 0}, {1, 0, 0, 0}}

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, data)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player.yaml")
	if err := os.WriteFile(path, []byte("rollout_depth: 4\nmovetime_ms: 250\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	limits := cfg.Limits()
	if limits.Depth != 4 || limits.Movetime != 250 || limits.SearchesPerMove != montecarlo.DefaultSearchesPerMove {
		t.Errorf("Limits() = %v", limits)
	}
	if limits.HasSeed() {
		t.Error("default config shouldn't fix the seed")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEvaluator(t *testing.T) {
	cfg := Default()
	cfg.PositionWeights = [][]float64{{10, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}
	cfg.Weights = heuristic.Weights{WeightedSum: 1}

	evaluator, err := cfg.Evaluator()
	if err != nil {
		t.Fatalf("Evaluator: %v", err)
	}
	board := game.NewBoard([game.Size][game.Size]int{{8, 2}})
	if got := evaluator.Evaluate(board); got != 80 {
		t.Errorf("Evaluate() = %v, want 80 (only the corner counts)", got)
	}
}

func TestNewEngine(t *testing.T) {
	cfg := Default()
	cfg.SpawnFourProb = 1

	engine := cfg.NewEngine(rng.New(1, 1))
	if engine.FourProbability() != 1 {
		t.Errorf("FourProbability() = %v, want 1", engine.FourProbability())
	}
	if engine.State().Sum() != 8 || engine.State().EmptyCount() != game.Size*game.Size-2 {
		t.Errorf("expected two initial 4s, got\n%v", engine.State())
	}
}
