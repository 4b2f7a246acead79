package montecarlo

import (
	"context"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/heuristic"
	"github.com/IlikeChooros/go-2048/pkg/rng"
)

// A single unit of parallel work: one rollout starting from the position
// after the first move was played
type RolloutTask struct {
	// Task index, unique within one selection
	Index int
	// First move, which led to Start
	Move game.Direction
	// Position after the first move, shared between the tasks of the same move, read-only
	Start *game.Engine
	Depth int
	// Generator owned by this task only
	Rand rng.Source
}

// Runs rollouts, must be safe for concurrent use, since
// the selector calls Rollout from multiple goroutines
type Simulator interface {
	Rollout(ctx context.Context, task RolloutTask) (float64, error)
}

// Plays uniformly random legal moves and sums the evaluation of every visited position
type RandomSimulator struct {
	Evaluator heuristic.Evaluator
}

func NewRandomSimulator(evaluator heuristic.Evaluator) *RandomSimulator {
	return &RandomSimulator{Evaluator: evaluator}
}

func (s *RandomSimulator) Rollout(ctx context.Context, task RolloutTask) (float64, error) {
	return Rollout(ctx, task.Start, task.Depth, s.Evaluator, task.Rand)
}

// Clone the start position, then up to 'depth' times: play a random legal move
// and add the evaluation of the new board. Stops early on a terminal position.
// The returned value is the cumulative (not averaged) sum.
// start is never modified, both move choice and tile spawns use r.
func Rollout(ctx context.Context, start *game.Engine, depth int, evaluator heuristic.Evaluator, r rng.Source) (float64, error) {
	sim := start.Clone()
	sim.SetRand(r)
	total := 0.0

	for range depth {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		moves := sim.LegalMoves()
		if len(moves) == 0 {
			break
		}

		if _, _, err := sim.ApplyMove(moves[r.IntN(len(moves))]); err != nil {
			return 0, err
		}
		total += evaluator.Evaluate(sim.State())
	}

	return total, nil
}
