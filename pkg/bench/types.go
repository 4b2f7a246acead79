package bench

import (
	"sync/atomic"

	"github.com/IlikeChooros/go-2048/pkg/heuristic"
	"github.com/IlikeChooros/go-2048/pkg/montecarlo"
)

// A selector configuration taking part in the arena
type Player struct {
	Name      string
	Limits    *montecarlo.Limits
	Evaluator heuristic.Evaluator
	// Probability of spawning a 4 in this player's games, 0 means game.DefaultFourProbability
	FourProb float64
}

// Counters shared by the workers
type ArenaStats struct {
	finished  uint32
	wins      uint32
	bestScore int64
}

func (as *ArenaStats) Finished() int {
	return int(atomic.LoadUint32(&as.finished))
}

func (as *ArenaStats) Wins() int {
	return int(atomic.LoadUint32(&as.wins))
}

func (as *ArenaStats) BestScore() int {
	return int(atomic.LoadInt64(&as.bestScore))
}

func (as *ArenaStats) record(result montecarlo.GameResult) {
	atomic.AddUint32(&as.finished, 1)
	if result.Won {
		atomic.AddUint32(&as.wins, 1)
	}
	for {
		best := atomic.LoadInt64(&as.bestScore)
		if int64(result.Score) <= best || atomic.CompareAndSwapInt64(&as.bestScore, best, int64(result.Score)) {
			break
		}
	}
}

func (as *ArenaStats) reset() {
	atomic.StoreUint32(&as.finished, 0)
	atomic.StoreUint32(&as.wins, 0)
	atomic.StoreInt64(&as.bestScore, 0)
}

// Passed to the listener after every finished game
type GameInfo struct {
	Player        string
	Game          int // index of the game within the player's series
	NGames        int // total number of games in the arena
	FinishedGames int
	Wins          int
	Result        montecarlo.GameResult
}
