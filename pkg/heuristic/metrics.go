package heuristic

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/IlikeChooros/go-2048/pkg/game"
)

// Row-major 4x4 matrix of positional weights, used by WeightedTileSum
type PositionWeights [game.Size * game.Size]float64

// All ones, every tile counts with it's face value
func UniformPositionWeights() PositionWeights {
	var w PositionWeights
	for i := range w {
		w[i] = 1
	}
	return w
}

func EmptyCells(b game.Board) float64 {
	return float64(b.EmptyCount())
}

func MaxTile(b game.Board) float64 {
	return float64(b.MaxTile())
}

// Sum of absolute differences between adjacent cells, over every row and every column.
// Note it doesn't reward ordered lines (like 2 4 8 16), it only measures how 'rough' they are.
func Monotonicity(b game.Board) float64 {
	score := 0
	for i := range game.Size {
		row := b.Line(game.Left, i)
		col := b.Line(game.Up, i)
		for k := 1; k < game.Size; k++ {
			score += abs(row[k]-row[k-1]) + abs(col[k]-col[k-1])
		}
	}
	return float64(score)
}

// Negative sum of |log2(a) - log2(b)| over every non-zero cell and it's non-zero
// right and lower neighbour. Zero means all adjacent tiles have the same magnitude.
func Smoothness(b game.Board) float64 {
	score := 0.0
	for r := range game.Size {
		for c := range game.Size {
			if b[r][c] == 0 {
				continue
			}

			value := math.Log2(float64(b[r][c]))
			if c+1 < game.Size && b[r][c+1] > 0 {
				score -= math.Abs(value - math.Log2(float64(b[r][c+1])))
			}
			if r+1 < game.Size && b[r+1][c] > 0 {
				score -= math.Abs(value - math.Log2(float64(b[r+1][c])))
			}
		}
	}
	return score
}

// Element-wise product of the board and the weights, summed
func WeightedTileSum(b game.Board, weights *PositionWeights) float64 {
	return floats.Dot(b.Flat(), weights[:])
}

// For every non-zero cell, the minimum absolute difference to any of it's (up to 8)
// neighbours, empty neighbours included; summed over the board.
// A cell without any neighbour inside the grid contributes 0, this can't happen
// on a 4x4 board, every cell has at least 3 neighbours.
func ClusteringPenalty(b game.Board) float64 {
	penalty := 0
	for r := range game.Size {
		for c := range game.Size {
			if b[r][c] == 0 {
				continue
			}

			minDiff, found := 0, false
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					nr, nc := r+dr, c+dc
					if (dr == 0 && dc == 0) || nr < 0 || nr >= game.Size || nc < 0 || nc >= game.Size {
						continue
					}

					diff := abs(b[r][c] - b[nr][nc])
					if !found || diff < minDiff {
						minDiff, found = diff, true
					}
				}
			}
			penalty += minDiff
		}
	}
	return float64(penalty)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
