package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/IlikeChooros/go-2048/pkg/game"
	"github.com/IlikeChooros/go-2048/pkg/montecarlo"
	"github.com/IlikeChooros/go-2048/pkg/rng"
)

/*
Arena benchmark subpackage, plays a series of full games for every player
configuration and summarizes the scores and the reached tiles.
*/

var ErrNoPlayers = errors.New("arena has no players")

type Arena struct {
	ArenaStats
	Players  []Player
	NGames   int // games per player
	NWorkers int // games played in parallel
	// Root seed of the whole arena, -1 means every game is seeded from entropy
	Seed int64
	ctx  context.Context
}

func NewArena(players ...Player) *Arena {
	return &Arena{
		Players:  players,
		NGames:   100,
		NWorkers: runtime.NumCPU(),
		Seed:     -1,
		ctx:      context.Background(),
	}
}

func (a *Arena) WithContext(ctx context.Context) *Arena {
	a.ctx = ctx
	return a
}

func (a *Arena) Setup(nGames, nWorkers int) *Arena {
	a.NGames = max(1, nGames)
	a.NWorkers = max(1, nWorkers)
	return a
}

func (a *Arena) SetSeed(seed int64) *Arena {
	a.Seed = seed
	return a
}

type job struct {
	index  int // global index, used for seeding
	player int
	game   int
}

// Play all games and summarize them per player (in the order of Players).
// Blocks until every game is finished. If the context is cancelled or a game fails,
// the summaries describe only the finished games and the error is returned.
func (a *Arena) Run(listener ListenerLike) ([]Summary, error) {
	if len(a.Players) == 0 {
		return nil, ErrNoPlayers
	}
	if listener == nil {
		listener = NopListener{}
	}

	a.reset()
	logger := zerolog.Ctx(a.ctx)
	total := len(a.Players) * a.NGames
	results := make([][]montecarlo.GameResult, len(a.Players))
	done := make([][]bool, len(a.Players))
	for i := range a.Players {
		results[i] = make([]montecarlo.GameResult, a.NGames)
		done[i] = make([]bool, a.NGames)
	}

	listener.OnStart(total)
	g, ctx := errgroup.WithContext(a.ctx)
	g.SetLimit(max(1, a.NWorkers))

	for p := range a.Players {
		for i := range a.NGames {
			j := job{index: p*a.NGames + i, player: p, game: i}
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}

				player := &a.Players[j.player]
				result, err := a.play(ctx, player, j)
				if err != nil {
					return fmt.Errorf("%s game %d: %w", player.Name, j.game, err)
				}

				// Every game writes only to it's own slot
				results[j.player][j.game] = result
				done[j.player][j.game] = true
				a.record(result)

				listener.OnGameFinished(GameInfo{
					Player:        player.Name,
					Game:          j.game,
					NGames:        total,
					FinishedGames: a.Finished(),
					Wins:          a.Wins(),
					Result:        result,
				})
				return nil
			})
		}
	}

	err := g.Wait()

	summaries := make([]Summary, len(a.Players))
	for p, player := range a.Players {
		finished := make([]montecarlo.GameResult, 0, a.NGames)
		for i, ok := range done[p] {
			if ok {
				finished = append(finished, results[p][i])
			}
		}
		summaries[p] = Summarize(player.Name, finished)
		logger.Info().
			Str("player", player.Name).
			Int("games", summaries[p].Games).
			Float64("win_rate", summaries[p].WinRate).
			Float64("mean_score", summaries[p].MeanScore).
			Int("best_score", summaries[p].BestScore).
			Msg("arena summary")
	}

	listener.OnFinishedWork(summaries)
	return summaries, err
}

func (a *Arena) play(ctx context.Context, player *Player, j job) (montecarlo.GameResult, error) {
	limits := montecarlo.DefaultLimits()
	if player.Limits != nil {
		*limits = *player.Limits
	}

	var r rng.Source
	if a.Seed >= 0 {
		r = rng.Derive(uint64(a.Seed), j.index)
		limits.SetSeed(a.Seed + int64(j.index))
	}

	// Selectors aren't safe for concurrent use, so every game gets it's own
	selector := montecarlo.NewSelector(player.Evaluator)
	selector.SetLimits(limits)

	engine := game.NewEngine(r)
	if player.FourProb > 0 {
		engine.SetFourProbability(player.FourProb)
		engine.Reset()
	}

	return selector.Play(ctx, engine)
}
