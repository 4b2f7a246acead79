package montecarlo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IlikeChooros/go-2048/pkg/game"
)

type SeedGeneratorFnType func() int64

var (
	// Selection was requested on a terminal position, this is an expected end state of a game
	ErrNoLegalMove = errors.New("no legal move")

	// At least one rollout didn't finish (failed, or the search was stopped/timed out),
	// a partial aggregate is never used to choose a move
	ErrAggregationIncomplete = errors.New("rollout aggregation incomplete")
)

// Aggregated rollout score of a single first move
type MoveScore struct {
	Move  game.Direction `json:"move" yaml:"move"`
	Score float64        `json:"score" yaml:"score"`
}

// Result of evaluating every legal move of a position
type Evaluation struct {
	// Legal moves with their aggregated scores, in canonical order
	Scores    []MoveScore
	Best      game.Direction
	BestScore float64
	Rollouts  int
	Seed      uint64
	Elapsed   time.Duration
}

func (e Evaluation) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("best %v score %.2f rollouts %d time %dms scores [",
		e.Best, e.BestScore, e.Rollouts, e.Elapsed.Milliseconds()))
	for i, ms := range e.Scores {
		if i > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(fmt.Sprintf("%v=%.2f", ms.Move, ms.Score))
	}
	builder.WriteByte(']')
	return builder.String()
}

// Evaluation, after the best move was committed to the game
type Selection struct {
	Evaluation
	Board game.Board
	Score int // game score after the move
	Delta int // score gained by the move
}

// Summary of a full game played by the selector
type GameResult struct {
	Board    game.Board    `json:"-" yaml:"-"`
	Score    int           `json:"score" yaml:"score"`
	MaxTile  int           `json:"max_tile" yaml:"max_tile"`
	Moves    int           `json:"moves" yaml:"moves"`
	Won      bool          `json:"won" yaml:"won"`
	Rollouts int           `json:"rollouts" yaml:"rollouts"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
}

func (r GameResult) String() string {
	return fmt.Sprintf("score %d max tile %d moves %d won %v rollouts %d time %v",
		r.Score, r.MaxTile, r.Moves, r.Won, r.Rollouts, r.Elapsed.Round(time.Millisecond))
}
