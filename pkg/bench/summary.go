package bench

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/montecarlo"
)

// Statistics of a player's series of games
type Summary struct {
	Player      string      `json:"player" yaml:"player"`
	Games       int         `json:"games" yaml:"games"`
	Wins        int         `json:"wins" yaml:"wins"`
	WinRate     float64     `json:"win_rate" yaml:"win_rate"` // percent
	BestScore   int         `json:"best_score" yaml:"best_score"`
	MeanScore   float64     `json:"mean_score" yaml:"mean_score"`
	StdDevScore float64     `json:"stddev_score" yaml:"stddev_score"`
	MedianScore float64     `json:"median_score" yaml:"median_score"`
	MeanMoves   float64     `json:"mean_moves" yaml:"mean_moves"`
	MaxTiles    map[int]int `json:"max_tiles" yaml:"max_tiles"` // max tile -> number of games
}

func Summarize(player string, results []montecarlo.GameResult) Summary {
	summary := Summary{
		Player:   player,
		Games:    len(results),
		MaxTiles: make(map[int]int),
	}
	if len(results) == 0 {
		return summary
	}

	scores := make([]float64, len(results))
	moves := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		moves[i] = float64(r.Moves)
		summary.MaxTiles[r.MaxTile]++
		summary.BestScore = max(summary.BestScore, r.Score)
		if r.Won {
			summary.Wins++
		}
	}

	summary.WinRate = 100 * float64(summary.Wins) / float64(summary.Games)
	summary.MeanScore = stat.Mean(scores, nil)
	summary.MeanMoves = stat.Mean(moves, nil)
	if len(scores) > 1 {
		summary.StdDevScore = stat.StdDev(scores, nil)
	}

	// Quantile needs sorted data
	slices.Sort(scores)
	if len(scores)%2 == 1 {
		summary.MedianScore = stat.Quantile(0.5, stat.Empirical, scores, nil)
	} else {
		mid := len(scores) / 2
		summary.MedianScore = (scores[mid-1] + scores[mid]) / 2
	}
	return summary
}

// Max tiles reached, in ascending order
func (s Summary) Tiles() []int {
	tiles := make([]int, 0, len(s.MaxTiles))
	for tile := range s.MaxTiles {
		tiles = append(tiles, tile)
	}
	slices.Sort(tiles)
	return tiles
}

// Percentage of games reaching at least the given tile
func (s Summary) Reached(tile int) float64 {
	if s.Games == 0 {
		return 0
	}
	n := 0
	for t, count := range s.MaxTiles {
		if t >= tile {
			n += count
		}
	}
	return 100 * float64(n) / float64(s.Games)
}

func (s Summary) String() string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("%s: games %d wins %d (%.1f%%) best %d\n",
		s.Player, s.Games, s.Wins, s.WinRate, s.BestScore))
	builder.WriteString(fmt.Sprintf("  score mean %.1f stddev %.1f median %.1f, mean moves %.1f\n",
		s.MeanScore, s.StdDevScore, s.MedianScore, s.MeanMoves))

	for _, tile := range s.Tiles() {
		count := s.MaxTiles[tile]
		bar := strings.Repeat("#", int(math.Ceil(40*float64(count)/float64(max(1, s.Games)))))
		builder.WriteString(fmt.Sprintf("  %6d %4d %s\n", tile, count, bar))
	}
	if s.Games > 0 {
		builder.WriteString(fmt.Sprintf("  reached %d: %.1f%%\n", game.WinningTile, s.Reached(game.WinningTile)))
	}
	return builder.String()
}

// Write the summaries as a YAML document
func WriteYAML(w io.Writer, summaries []Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(summaries); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return enc.Close()
}
