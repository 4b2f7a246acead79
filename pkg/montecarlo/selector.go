package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/heuristic"
	"github.com/IlikeChooros/go-2048/pkg/rng"
)

// Flat Monte-Carlo move selector: every legal move gets the same number of random
// rollouts, the move with the highest summed rollout score is played.
//
// A Selector is meant to drive one game at a time, Select must not be called
// concurrently on the same instance (the rollouts themselves run in parallel,
// see Limits.NThreads)
type Selector struct {
	Limiter   *Limiter
	listener  *StatsListener
	simulator Simulator
}

// Create a selector using random rollouts scored by the evaluator
func NewSelector(evaluator heuristic.Evaluator) *Selector {
	return NewSelectorWithSimulator(NewRandomSimulator(evaluator))
}

func NewSelectorWithSimulator(simulator Simulator) *Selector {
	listener := NewStatsListener()
	return &Selector{
		Limiter:   NewLimiter(),
		listener:  &listener,
		simulator: simulator,
	}
}

func (s *Selector) SetLimits(limits *Limits) {
	s.Limiter.SetLimits(limits)
}

func (s *Selector) Limits() *Limits {
	return s.Limiter.Limits()
}

func (s *Selector) SetSimulator(simulator Simulator) {
	s.simulator = simulator
}

func (s *Selector) StatsListener() *StatsListener {
	return s.listener
}

func (s *Selector) SetListener(listener StatsListener) {
	*s.listener = listener
}

func (s *Selector) ResetListener() {
	s.listener.OnSelect(nil).OnGameEnd(nil)
}

// Interrupt the running selection, it will fail with ErrAggregationIncomplete
func (s *Selector) Stop() {
	s.Limiter.Stop()
}

// Get the reason why the last selection was stopped
func (s *Selector) StopReason() StopReason {
	return s.Limiter.StopReason()
}

// Root seed of a selection, derived from the configured seed and the position,
// so the same position with the same seed always gets the same rollouts
func (s *Selector) rootSeed(engine *game.Engine) uint64 {
	var seed uint64
	if limits := s.Limits(); limits.HasSeed() {
		seed = uint64(limits.Seed)
	} else {
		seed = uint64(SeedGeneratorFn())
	}

	h := fnv.New64a()
	h.Write([]byte(engine.String()))
	return seed ^ h.Sum64()
}

// Run all rollouts for every legal move and aggregate their scores, without
// committing any move. Blocks until every rollout has finished.
//
// Returns ErrNoLegalMove on a terminal position, and ErrAggregationIncomplete
// if any rollout failed or the selection ran out of time/was stopped.
func (s *Selector) Evaluate(ctx context.Context, engine *game.Engine) (Evaluation, error) {
	legal := engine.LegalMoves()
	if len(legal) == 0 {
		return Evaluation{}, ErrNoLegalMove
	}

	logger := zerolog.Ctx(ctx)
	limits := s.Limits()
	searches := max(1, limits.SearchesPerMove)
	total := len(legal) * searches
	root := s.rootSeed(engine)

	ctx, cancel := s.Limiter.Start(ctx)
	defer cancel()

	// Position after each first move, with it's own spawn
	starts := make([]*game.Engine, len(legal))
	for i, m := range legal {
		start := engine.Clone()
		start.SetRand(rng.Derive(root, total+i))
		if _, _, err := start.ApplyMove(m); err != nil {
			return Evaluation{}, err
		}
		starts[i] = start
	}

	// Every rollout writes only to it's own slot, sums are computed after the join
	results := make([]float64, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, limits.NThreads))

	for i := range legal {
		for j := range searches {
			task := RolloutTask{
				Index: i*searches + j,
				Move:  legal[i],
				Start: starts[i],
				Depth: limits.Depth,
			}
			task.Rand = rng.Derive(root, task.Index)

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				score, err := s.simulator.Rollout(gctx, task)
				if err != nil {
					return fmt.Errorf("rollout %d (%v): %w", task.Index, task.Move, err)
				}
				results[task.Index] = score
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		reason := s.Limiter.EvaluateStopReason(err)
		logger.Debug().Err(err).Stringer("reason", reason).Dur("elapsed", s.Limiter.Elapsed()).
			Msg("selection aborted")
		return Evaluation{}, fmt.Errorf("%w: %w", ErrAggregationIncomplete, err)
	}

	eval := Evaluation{
		Scores:   make([]MoveScore, len(legal)),
		Rollouts: total,
		Seed:     root,
		Elapsed:  s.Limiter.Elapsed(),
	}

	// Fixed summation order keeps the aggregates bit-for-bit reproducible
	for i, m := range legal {
		sum := 0.0
		for _, score := range results[i*searches : (i+1)*searches] {
			sum += score
		}
		eval.Scores[i] = MoveScore{Move: m, Score: sum}
	}

	best := ArgMax(eval.Scores)
	eval.Best = eval.Scores[best].Move
	eval.BestScore = eval.Scores[best].Score
	return eval, nil
}

// Index of the highest score, ties go to the first one (which, for scores
// produced by Evaluate, means first in the canonical direction order)
func ArgMax(scores []MoveScore) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[best].Score {
			best = i
		}
	}
	return best
}

// Evaluate the position and commit the best move to the engine, the engine
// spawns the new tile with it's own random source.
// On any error the engine is left untouched.
func (s *Selector) Select(ctx context.Context, engine *game.Engine) (Selection, error) {
	eval, err := s.Evaluate(ctx, engine)
	if err != nil {
		return Selection{}, err
	}

	changed, delta, err := engine.ApplyMove(eval.Best)
	if err != nil {
		return Selection{}, err
	}
	if !changed {
		return Selection{}, fmt.Errorf("selected move %v didn't change the board", eval.Best)
	}

	selection := Selection{
		Evaluation: eval,
		Board:      engine.State(),
		Score:      engine.Score(),
		Delta:      delta,
	}

	zerolog.Ctx(ctx).Debug().
		Stringer("move", eval.Best).
		Float64("aggregate", eval.BestScore).
		Int("score", selection.Score).
		Int("rollouts", eval.Rollouts).
		Dur("elapsed", eval.Elapsed).
		Msg("move selected")

	s.listener.invokeSelect(selection)
	return selection, nil
}

// Same as Select, but with given number of rollouts per move and rollout depth,
// the other limits stay as they are
func (s *Selector) SelectMove(ctx context.Context, engine *game.Engine, searchesPerMove, rolloutDepth int) (game.Direction, game.Board, error) {
	limits := *s.Limits()
	limits.SetSearches(searchesPerMove).SetDepth(rolloutDepth)

	previous := s.Limits()
	s.SetLimits(&limits)
	defer s.SetLimits(previous)

	selection, err := s.Select(ctx, engine)
	if err != nil {
		return 0, engine.State(), err
	}
	return selection.Move(), selection.Board, nil
}

// The committed move
func (s Selection) Move() game.Direction {
	return s.Best
}

// Keep selecting moves until the game ends. Returns the summary of the game,
// on error the summary describes the game up to the failed selection
func (s *Selector) Play(ctx context.Context, engine *game.Engine) (GameResult, error) {
	logger := zerolog.Ctx(ctx)
	start := time.Now()
	result := GameResult{}

	finish := func() GameResult {
		result.Board = engine.State()
		result.Score = engine.Score()
		result.MaxTile = engine.MaxTile()
		result.Won = engine.IsWin()
		result.Elapsed = time.Since(start)
		return result
	}

	for {
		selection, err := s.Select(ctx, engine)
		if errors.Is(err, ErrNoLegalMove) {
			break
		}
		if err != nil {
			return finish(), err
		}
		result.Moves++
		result.Rollouts += selection.Rollouts
	}

	finish()
	logger.Info().
		Int("score", result.Score).
		Int("max_tile", result.MaxTile).
		Int("moves", result.Moves).
		Bool("won", result.Won).
		Dur("elapsed", result.Elapsed).
		Msg("game over")

	s.listener.invokeGameEnd(result)
	return result, nil
}
