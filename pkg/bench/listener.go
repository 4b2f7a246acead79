package bench

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/muesli/termenv"

	"github.com/IlikeChooros/go-2048/pkg/view"
)

// Receives the arena's progress. OnGameFinished is called from the worker
// goroutines, so implementations must be safe for concurrent use
type ListenerLike interface {
	OnStart(nGames int)
	OnGameFinished(info GameInfo)
	OnFinishedWork(summaries []Summary)
}

type NopListener struct{}

func (NopListener) OnStart(int)              {}
func (NopListener) OnGameFinished(GameInfo)  {}
func (NopListener) OnFinishedWork([]Summary) {}

// Prints a line per finished game, with the max tile in it's tile color,
// and the summaries at the end
type DefaultListener struct {
	mu  sync.Mutex
	out *termenv.Output
}

func NewDefaultListener(w io.Writer, opts ...termenv.OutputOption) *DefaultListener {
	return &DefaultListener{out: termenv.NewOutput(w, opts...)}
}

func (d *DefaultListener) OnStart(nGames int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "playing %d games\n", nGames)
}

func (d *DefaultListener) OnGameFinished(info GameInfo) {
	background, font := view.TileColor(info.Result.MaxTile)
	tile := d.out.String(fmt.Sprintf(" %6s ", strconv.Itoa(info.Result.MaxTile))).
		Background(d.out.Color(background)).
		Foreground(d.out.Color(font))

	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "[%d/%d] %-12s game %-4d %s score %-7d moves %-5d wins %d\n",
		info.FinishedGames, info.NGames, info.Player, info.Game, tile, info.Result.Score,
		info.Result.Moves, info.Wins)
}

func (d *DefaultListener) OnFinishedWork(summaries []Summary) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range summaries {
		fmt.Fprint(d.out, d.out.String(s.String()).Bold())
	}
}
