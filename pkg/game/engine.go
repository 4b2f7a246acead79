package game

import (
	"fmt"

	"github.com/IlikeChooros/go-2048/pkg/rng"
)

// Engine owns the state of a single game: the board and the cumulative score.
// All mutations go through Reset and ApplyMove, the only source of randomness
// is the tile spawning, drawn from the injected rng.Source
type Engine struct {
	board    Board
	score    int
	rand     rng.Source
	fourProb float64
}

// Create a new game, with two tiles already spawned. If r is nil,
// a non-reproducible source is used
func NewEngine(r rng.Source) *Engine {
	e := &Engine{rand: r, fourProb: DefaultFourProbability}
	if e.rand == nil {
		e.rand = rng.Entropy()
	}
	e.Reset()
	return e
}

// Create an engine with given position, no tiles are spawned
func NewEngineFromBoard(board Board, score int, r rng.Source) (*Engine, error) {
	e := &Engine{rand: r, fourProb: DefaultFourProbability}
	if e.rand == nil {
		e.rand = rng.Entropy()
	}
	if err := e.SetState(board, score); err != nil {
		return nil, err
	}
	return e, nil
}

// Clear the board, zero the score and spawn two initial tiles
func (e *Engine) Reset() {
	e.board = Board{}
	e.score = 0
	e.spawn()
	e.spawn()
}

// Replace the position, the board must hold only 0s and powers of two
func (e *Engine) SetState(board Board, score int) error {
	if !board.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidBoard, board.Notation())
	}
	if score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidBoard, score)
	}
	e.board = board
	e.score = score
	return nil
}

// Set the random number generator used for spawning tiles
func (e *Engine) SetRand(r rng.Source) {
	if r != nil {
		e.rand = r
	}
}

// Set the probability of spawning a '4' (clamped to [0, 1])
func (e *Engine) SetFourProbability(p float64) {
	e.fourProb = min(max(p, 0), 1)
}

func (e *Engine) FourProbability() float64 {
	return e.fourProb
}

// Make a deep copy of the game, the copy has no shared memory with this engine,
// except for the random source. If the clone is used on another goroutine,
// set it's own source with SetRand
func (e *Engine) Clone() *Engine {
	clone := *e
	return &clone
}

// Slide the board in direction d. If the board changed, the move is committed:
// the merge score is added to the score and one new tile is spawned.
// Nothing is mutated, if the move doesn't change the board (changed == false).
func (e *Engine) ApplyMove(d Direction) (changed bool, delta int, err error) {
	if !d.Valid() {
		return false, 0, fmt.Errorf("%w: %d", ErrInvalidDirection, uint8(d))
	}

	next, delta := e.board.Move(d)
	if next == e.board {
		return false, 0, nil
	}

	e.board = next
	e.score += delta
	e.spawn()
	return true, delta, nil
}

// Directions (in canonical order), which would change the board.
// Doesn't modify the engine
func (e *Engine) LegalMoves() []Direction {
	moves := make([]Direction, 0, DirectionCount)
	for _, d := range Directions {
		if e.board.CanMove(d) {
			moves = append(moves, d)
		}
	}
	return moves
}

func (e *Engine) IsTerminal() bool {
	return len(e.LegalMoves()) == 0
}

// Whether any tile reached WinningTile
func (e *Engine) IsWin() bool {
	return e.board.MaxTile() >= WinningTile
}

// Snapshot of the board
func (e *Engine) State() Board {
	return e.board
}

func (e *Engine) Score() int {
	return e.score
}

func (e *Engine) MaxTile() int {
	return e.board.MaxTile()
}

func (e *Engine) String() string {
	return fmt.Sprintf("%s %d", e.board.Notation(), e.score)
}

// Put a 2 (or a 4 with fourProb probability) on a uniformly chosen empty cell,
// returns false if the board is full
func (e *Engine) spawn() bool {
	empty := e.board.EmptyCells()
	if len(empty) == 0 {
		return false
	}

	cell := empty[e.rand.IntN(len(empty))]
	value := 2
	if e.rand.Float64() < e.fourProb {
		value = 4
	}
	e.board[cell.Row][cell.Col] = value
	return true
}
