package heuristic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-2048/pkg/game"
)

var ErrUnknownEvaluator = errors.New("unknown evaluator")

// Scores the desirability of a board, higher is better.
// Implementations must be safe for concurrent use (rollouts call them in parallel)
type Evaluator interface {
	Evaluate(b game.Board) float64
}

// Coefficients of the linear combination used by Heuristic. The signs are part
// of the weights, so the penalties (monotonicity, clustering) have negative defaults
type Weights struct {
	Empty        float64 `yaml:"empty" json:"empty"`
	MaxTile      float64 `yaml:"max_tile" json:"max_tile"`
	Monotonicity float64 `yaml:"monotonicity" json:"monotonicity"`
	Smoothness   float64 `yaml:"smoothness" json:"smoothness"`
	WeightedSum  float64 `yaml:"weighted_sum" json:"weighted_sum"`
	Clustering   float64 `yaml:"clustering" json:"clustering"`
}

func DefaultWeights() Weights {
	return Weights{
		Empty:        0.4,
		MaxTile:      1.2,
		Monotonicity: -0.2,
		Smoothness:   0.3,
		WeightedSum:  0.5,
		Clustering:   -0.4,
	}
}

// Raw (unweighted) values of every metric for a board
type Components struct {
	Empty        float64
	MaxTile      float64
	Monotonicity float64
	Smoothness   float64
	WeightedSum  float64
	Clustering   float64
}

func (c Components) String() string {
	return fmt.Sprintf("empty=%.0f max=%.0f mono=%.0f smooth=%.2f wsum=%.0f cluster=%.0f",
		c.Empty, c.MaxTile, c.Monotonicity, c.Smoothness, c.WeightedSum, c.Clustering)
}

// The weighted, six-term heuristic:
//
//	0.4*empty + 1.2*maxTile - 0.2*monotonicity + 0.3*smoothness + 0.5*weightedSum - 0.4*clustering
//
// with default weights. Stateless, safe for concurrent use
type Heuristic struct {
	Weights   Weights
	Positions PositionWeights
}

// Heuristic with default weights and uniform position weights
func NewHeuristic() *Heuristic {
	return &Heuristic{
		Weights:   DefaultWeights(),
		Positions: UniformPositionWeights(),
	}
}

func (h *Heuristic) Components(b game.Board) Components {
	return Components{
		Empty:        EmptyCells(b),
		MaxTile:      MaxTile(b),
		Monotonicity: Monotonicity(b),
		Smoothness:   Smoothness(b),
		WeightedSum:  WeightedTileSum(b, &h.Positions),
		Clustering:   ClusteringPenalty(b),
	}
}

func (h *Heuristic) Evaluate(b game.Board) float64 {
	c := h.Components(b)
	w := &h.Weights
	return w.Empty*c.Empty +
		w.MaxTile*c.MaxTile +
		w.Monotonicity*c.Monotonicity +
		w.Smoothness*c.Smoothness +
		w.WeightedSum*c.WeightedSum +
		w.Clustering*c.Clustering
}

// Scores a board only by it's largest tile
type MaxTileEvaluator struct{}

func (MaxTileEvaluator) Evaluate(b game.Board) float64 {
	return MaxTile(b)
}

// Number of empty cells plus the largest tile
type EmptyMaxEvaluator struct{}

func (EmptyMaxEvaluator) Evaluate(b game.Board) float64 {
	return EmptyCells(b) + MaxTile(b)
}

const (
	NameAdvanced = "advanced"
	NameEnhanced = "enhanced"
	NameBasic    = "basic"
)

// Get the evaluator by name: "advanced" (Heuristic with given weights), "enhanced" (EmptyMaxEvaluator)
// or "basic" (MaxTileEvaluator). Empty name means "advanced"
func ByName(name string, weights Weights, positions PositionWeights) (Evaluator, error) {
	switch strings.ToLower(name) {
	case "", NameAdvanced:
		return &Heuristic{Weights: weights, Positions: positions}, nil
	case NameEnhanced:
		return EmptyMaxEvaluator{}, nil
	case NameBasic:
		return MaxTileEvaluator{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvaluator, name)
}
