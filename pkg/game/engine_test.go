package game

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IlikeChooros/go-2048/pkg/rng"
)

func TestSlideLeft(t *testing.T) {
	tests := []struct {
		name  string
		line  [Size]int
		want  [Size]int
		score int
	}{
		{"no chaining", [Size]int{2, 2, 2, 2}, [Size]int{4, 4, 0, 0}, 8},
		{"gap", [Size]int{2, 0, 2, 4}, [Size]int{4, 4, 0, 0}, 4},
		{"pair", [Size]int{2, 2, 0, 0}, [Size]int{4, 0, 0, 0}, 4},
		{"merged tile not merged again", [Size]int{4, 4, 8, 0}, [Size]int{8, 8, 0, 0}, 8},
		{"two pairs", [Size]int{4, 4, 2, 2}, [Size]int{8, 4, 0, 0}, 12},
		{"odd triple", [Size]int{0, 2, 2, 2}, [Size]int{4, 2, 0, 0}, 4},
		{"no merge", [Size]int{2, 4, 8, 16}, [Size]int{2, 4, 8, 16}, 0},
		{"compaction only", [Size]int{0, 0, 0, 2}, [Size]int{2, 0, 0, 0}, 0},
		{"empty", [Size]int{}, [Size]int{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := SlideLeft(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SlideLeft(%v) mismatch (-want +got):\n%s", tt.line, diff)
			}
			if score != tt.score {
				t.Errorf("SlideLeft(%v) score = %d, want %d", tt.line, score, tt.score)
			}
		})
	}
}

func reverse(line [Size]int) [Size]int {
	for i, j := 0, Size-1; i < j; i, j = i+1, j-1 {
		line[i], line[j] = line[j], line[i]
	}
	return line
}

// Every row built out of {0, 2, 4, 8}, moved right must equal
// reverse(left(reverse(row))), with the same score. Same for columns (down vs up)
func TestMirrorConsistency(t *testing.T) {
	values := []int{0, 2, 4, 8}
	for i := 0; i < 256; i++ {
		var row [Size]int
		for k := range Size {
			row[k] = values[(i>>(2*k))&3]
		}

		board := Board{row}
		right, rightScore := board.Move(Right)
		left, leftScore := SlideLeft(reverse(row))
		if right[0] != reverse(left) || rightScore != leftScore {
			t.Fatalf("right %v: got %v (%d), want %v (%d)", row, right[0], rightScore, reverse(left), leftScore)
		}

		var column Board
		for k := range Size {
			column[k][0] = row[k]
		}
		down, downScore := column.Move(Down)
		up, upScore := SlideLeft(reverse(row))
		if down.Line(Up, 0) != reverse(up) || downScore != upScore {
			t.Fatalf("down %v: got %v (%d), want %v (%d)", row, down.Line(Up, 0), downScore, reverse(up), upScore)
		}
	}
}

func TestApplyMoveScenario(t *testing.T) {
	board := NewBoard([Size][Size]int{
		{2, 2, 0, 0},
	})
	engine, err := NewEngineFromBoard(board, 0, rng.New(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	changed, delta, err := engine.ApplyMove(Left)
	if err != nil {
		t.Fatal(err)
	}
	if !changed || delta != 4 {
		t.Fatalf("ApplyMove(left) = (%v, %d), want (true, 4)", changed, delta)
	}

	state := engine.State()
	if state[0][0] != 4 {
		t.Errorf("row after move: %v, want 4 in the first cell", state[0])
	}
	// the 4 plus exactly one spawned tile
	if n := Size*Size - state.EmptyCount(); n != 2 {
		t.Errorf("expected 2 tiles after the move, got %d:\n%v", n, state)
	}
	if engine.Score() != 4 {
		t.Errorf("score = %d, want 4", engine.Score())
	}
}

func TestApplyMoveUnchanged(t *testing.T) {
	board := NewBoard([Size][Size]int{
		{2, 4, 0, 0},
		{8, 0, 0, 0},
	})
	engine, _ := NewEngineFromBoard(board, 10, rng.New(1, 1))

	changed, delta, err := engine.ApplyMove(Left)
	if err != nil {
		t.Fatal(err)
	}
	if changed || delta != 0 {
		t.Errorf("ApplyMove(left) = (%v, %d), want (false, 0)", changed, delta)
	}
	if diff := cmp.Diff(board, engine.State()); diff != "" {
		t.Errorf("board changed (-want +got):\n%s", diff)
	}
	if engine.Score() != 10 {
		t.Errorf("score changed to %d", engine.Score())
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	engine := NewEngine(rng.New(3, 3))
	before := engine.State()

	_, _, err := engine.ApplyMove(Direction(7))
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	if engine.State() != before || engine.Score() != 0 {
		t.Error("invalid move mutated the engine")
	}
}

func TestLegalMovesHasNoSideEffects(t *testing.T) {
	engine := NewEngine(rng.New(7, 0))
	for range 10 {
		moves := engine.LegalMoves()
		if len(moves) == 0 {
			break
		}
		engine.ApplyMove(moves[0])
	}

	board, score := engine.State(), engine.Score()
	first := engine.LegalMoves()
	for range 5 {
		if diff := cmp.Diff(first, engine.LegalMoves()); diff != "" {
			t.Fatalf("LegalMoves not stable (-first +now):\n%s", diff)
		}
	}
	if engine.State() != board || engine.Score() != score {
		t.Error("LegalMoves mutated the engine")
	}
}

func TestTerminalLockedBoard(t *testing.T) {
	board := NewBoard([Size][Size]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	engine, err := NewEngineFromBoard(board, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if moves := engine.LegalMoves(); len(moves) != 0 {
		t.Errorf("expected no legal moves, got %v", moves)
	}
	if !engine.IsTerminal() {
		t.Error("expected a terminal position")
	}
}

func TestFullBoardWithMerge(t *testing.T) {
	board := NewBoard([Size][Size]int{
		{2, 2, 4, 8},
		{4, 8, 16, 32},
		{8, 16, 32, 64},
		{16, 32, 64, 128},
	})
	engine, _ := NewEngineFromBoard(board, 0, rng.New(1, 2))

	if diff := cmp.Diff([]Direction{Left, Right}, engine.LegalMoves()); diff != "" {
		t.Errorf("legal moves mismatch (-want +got):\n%s", diff)
	}
	if engine.IsTerminal() {
		t.Error("position shouldn't be terminal")
	}
}

// Plays random games and checks the engine invariants after every move:
// score grows exactly by the merge sum, exactly one tile spawns, 'terminal iff no legal moves'
func TestRandomPlayInvariants(t *testing.T) {
	for seed := range uint64(20) {
		r := rng.New(seed, 99)
		engine := NewEngine(rng.New(seed, 0))

		if n := Size*Size - engine.State().EmptyCount(); n != 2 {
			t.Fatalf("seed %d: expected 2 tiles after reset, got %d", seed, n)
		}

		for {
			legal := engine.LegalMoves()
			if engine.IsTerminal() != (len(legal) == 0) {
				t.Fatalf("seed %d: IsTerminal() disagrees with LegalMoves() %v", seed, legal)
			}
			if len(legal) == 0 {
				break
			}

			before, score := engine.State(), engine.Score()
			d := legal[r.IntN(len(legal))]
			expected, expectedDelta := before.Move(d)

			changed, delta, err := engine.ApplyMove(d)
			if err != nil || !changed {
				t.Fatalf("seed %d: legal move %v rejected: changed=%v err=%v", seed, d, changed, err)
			}
			if delta != expectedDelta || engine.Score() != score+delta {
				t.Fatalf("seed %d: score %d -> %d with delta %d, want delta %d", seed, score, engine.Score(), delta, expectedDelta)
			}

			after := engine.State()
			if !after.Valid() {
				t.Fatalf("seed %d: invalid board\n%v", seed, after)
			}
			spawned := 0
			for row := range Size {
				for col := range Size {
					if after[row][col] == expected[row][col] {
						continue
					}
					if expected[row][col] != 0 || (after[row][col] != 2 && after[row][col] != 4) {
						t.Fatalf("seed %d: unexpected change at (%d, %d)\nexpected:\n%v\ngot:\n%v", seed, row, col, expected, after)
					}
					spawned++
				}
			}
			if spawned != 1 {
				t.Fatalf("seed %d: %d tiles spawned, want 1", seed, spawned)
			}
		}
	}
}

func TestSpawnProbability(t *testing.T) {
	const n = 20000
	fours := 0
	r := rng.New(5, 5)
	for range n {
		engine, _ := NewEngineFromBoard(Board{}, 0, r)
		engine.Reset()
		for _, v := range engine.State().Flat() {
			if v == 4 {
				fours++
			}
		}
	}

	ratio := float64(fours) / (2 * n)
	if ratio < 0.08 || ratio > 0.12 {
		t.Errorf("ratio of spawned fours = %.3f, want ~%.1f", ratio, DefaultFourProbability)
	}

	engine, _ := NewEngineFromBoard(Board{}, 0, r)
	engine.SetFourProbability(1)
	engine.Reset()
	for _, v := range engine.State().Flat() {
		if v != 0 && v != 4 {
			t.Fatalf("expected only fours, got\n%v", engine.State())
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	engine := NewEngine(rng.New(11, 0))
	clone := engine.Clone()
	clone.SetRand(rng.New(12, 0))

	board, score := engine.State(), engine.Score()
	for _, d := range clone.LegalMoves() {
		clone.ApplyMove(d)
	}

	if engine.State() != board || engine.Score() != score {
		t.Error("moves on the clone changed the original engine")
	}
}

func TestIsWin(t *testing.T) {
	engine, _ := NewEngineFromBoard(NewBoard([Size][Size]int{{2048}}), 0, nil)
	if !engine.IsWin() {
		t.Error("expected a win with a 2048 tile")
	}
	engine, _ = NewEngineFromBoard(NewBoard([Size][Size]int{{1024, 1024}}), 0, nil)
	if engine.IsWin() {
		t.Error("no 2048 tile, shouldn't be a win")
	}
}
