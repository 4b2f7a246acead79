// Package view renders 2048 boards on a terminal, with the classic tile colors.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-2048/pkg/game"
)

const (
	EmptyColor     = "#1e1e1e"
	DarkFontColor  = "#776e65"
	LightFontColor = "#ffffff"
)

var tileColors = map[int]string{
	2:      "#eee4da",
	4:      "#ede0c8",
	8:      "#f2b179",
	16:     "#f59563",
	32:     "#f67c5f",
	64:     "#f65e3b",
	128:    "#edcf72",
	256:    "#edcc61",
	512:    "#edc850",
	1024:   "#edc53f",
	2048:   "#edc22e",
	4096:   "#b586b4",
	8192:   "#a861ab",
	16384:  "#a048a3",
	32768:  "#800080",
	65536:  "#600046",
	131072: "#8b86e3",
}

// Background and font color of a tile, unknown values are drawn as empty
func TileColor(value int) (background, font string) {
	background, ok := tileColors[value]
	if !ok {
		background = EmptyColor
	}
	if value <= 4 {
		return background, DarkFontColor
	}
	return background, LightFontColor
}

// Width of a single cell, fits the largest reachable tile
const CellWidth = 8

type Renderer struct {
	out   *termenv.Output
	lines int // lines written by the last Redraw
}

// Renderer writing to w, the color profile is detected from w unless given in opts
func NewRenderer(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

func (r *Renderer) Output() *termenv.Output {
	return r.out
}

func (r *Renderer) tile(value int) string {
	label := ""
	if value > 0 {
		label = strconv.Itoa(value)
	}

	pad := CellWidth - len(label)
	text := strings.Repeat(" ", pad-pad/2) + label + strings.Repeat(" ", pad/2)

	background, font := TileColor(value)
	style := r.out.String(text).Background(r.out.Color(background)).Foreground(r.out.Color(font))
	if value >= 8 {
		style = style.Bold()
	}
	return style.String()
}

// Board as Size lines of colored cells
func (r *Renderer) Board(b game.Board) string {
	builder := strings.Builder{}
	for row := range game.Size {
		for col := range game.Size {
			builder.WriteString(r.tile(b[row][col]))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// Board followed by the score line
func (r *Renderer) Game(e *game.Engine) string {
	return r.Board(e.State()) + fmt.Sprintf("score %d max %d\n", e.Score(), e.MaxTile())
}

// Draw the game in place of the previous Redraw output
func (r *Renderer) Redraw(e *game.Engine) {
	if r.lines > 0 {
		r.out.ClearLines(r.lines)
	}
	text := r.Game(e)
	r.lines = strings.Count(text, "\n")
	fmt.Fprint(r.out, text)
}
