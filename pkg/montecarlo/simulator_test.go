package montecarlo

import (
	"context"
	"errors"
	"testing"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/heuristic"
	"github.com/IlikeChooros/go-2048/pkg/rng"
)

// Counts how many positions were evaluated
type countingEvaluator struct {
	calls int
}

func (e *countingEvaluator) Evaluate(b game.Board) float64 {
	e.calls++
	return 1
}

func TestRolloutDoesNotMutateStart(t *testing.T) {
	start := newEngine(t, midgameBoard, 1)
	before := start.String()

	if _, err := Rollout(context.Background(), start, 20, heuristic.NewHeuristic(), rng.New(4, 0)); err != nil {
		t.Fatalf("Rollout: %v", err)
	}
	if start.String() != before {
		t.Errorf("start changed: %q -> %q", before, start.String())
	}
}

func TestRolloutIsCumulative(t *testing.T) {
	start := newEngine(t, game.NewBoard([game.Size][game.Size]int{{2}}), 1)
	ev := &countingEvaluator{}

	// An almost empty board can't lock up within 5 moves
	got, err := Rollout(context.Background(), start, 5, ev, rng.New(4, 0))
	if err != nil {
		t.Fatalf("Rollout: %v", err)
	}
	if got != 5 || ev.calls != 5 {
		t.Errorf("Rollout() = %v after %d evaluations, want 5", got, ev.calls)
	}
}

func TestRolloutStopsOnTerminal(t *testing.T) {
	start := newEngine(t, lockedBoard, 1)
	ev := &countingEvaluator{}

	got, err := Rollout(context.Background(), start, 10, ev, rng.New(4, 0))
	if err != nil {
		t.Fatalf("Rollout: %v", err)
	}
	if got != 0 || ev.calls != 0 {
		t.Errorf("Rollout() on a locked board = %v after %d evaluations, want 0", got, ev.calls)
	}
}

func TestRolloutReproducible(t *testing.T) {
	start := newEngine(t, midgameBoard, 1)
	h := heuristic.NewHeuristic()

	a, _ := Rollout(context.Background(), start, 10, h, rng.Derive(99, 3))
	b, _ := Rollout(context.Background(), start, 10, h, rng.Derive(99, 3))
	if a != b {
		t.Errorf("same generator gave different results: %v vs %v", a, b)
	}
}

func TestRolloutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := newEngine(t, midgameBoard, 1)
	sim := NewRandomSimulator(heuristic.NewHeuristic())
	_, err := sim.Rollout(ctx, RolloutTask{Start: start, Depth: 10, Rand: rng.New(1, 1)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
