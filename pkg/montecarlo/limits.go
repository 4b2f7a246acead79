package montecarlo

import (
	"encoding/json"
	"strings"
)

type Limits struct {
	// Number of independent rollouts per legal move
	SearchesPerMove int
	// Maximum number of plies in a rollout
	Depth int
	// Time budget of a single move selection in milliseconds, -1 means no limit.
	// Running out of time fails the selection, it never returns a partial result
	Movetime int
	// Maximum number of rollouts running in parallel
	NThreads int
	// Fixed root seed, -1 means SeedGeneratorFn is used
	Seed int64
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return strings.TrimSpace(builder.String())
}

const (
	DefaultMovetimeLimit int   = -1
	DefaultSeed          int64 = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		SearchesPerMove: DefaultSearchesPerMove,
		Depth:           DefaultDepth,
		Movetime:        DefaultMovetimeLimit,
		NThreads:        1,
		Seed:            DefaultSeed,
	}
}

// Set the number of rollouts per legal move
func (l *Limits) SetSearches(searches int) *Limits {
	l.SearchesPerMove = max(1, searches)
	return l
}

// Set the maximum number of plies of a single rollout
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = max(1, depth)
	return l
}

// Set the maximum time (in milliseconds) for a single selection
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	return l
}

func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}

// Fix the root seed, making the selection reproducible
func (l *Limits) SetSeed(seed int64) *Limits {
	l.Seed = seed
	return l
}

func (l *Limits) HasSeed() bool {
	return l.Seed >= 0
}

// Total number of rollouts for given number of legal moves
func (l *Limits) Rollouts(legalMoves int) int {
	return legalMoves * l.SearchesPerMove
}
