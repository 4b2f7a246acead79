package montecarlo

// Listener function callbacks, called synchronously by the goroutine running
// the selection (never by the rollout workers), so no synchronization is needed
type SelectListenerFunc func(Selection)
type GameListenerFunc func(GameResult)

type StatsListener struct {
	// called after every committed move
	onSelect SelectListenerFunc
	nMoves   int // call 'onSelect' every N moves

	// called once, when Play reaches a terminal position
	onGameEnd GameListenerFunc

	moves int
}

func NewStatsListener() StatsListener {
	return StatsListener{nMoves: 1}
}

// Attach 'on move committed' callback
func (listener *StatsListener) OnSelect(onSelect SelectListenerFunc) *StatsListener {
	listener.onSelect = onSelect
	return listener
}

func (listener *StatsListener) SetMoveInterval(n int) *StatsListener {
	if n < 1 {
		n = 1
	}
	listener.nMoves = n
	return listener
}

// Attach 'game ended' callback, receives the summary of the game played by Selector.Play
func (listener *StatsListener) OnGameEnd(onGameEnd GameListenerFunc) *StatsListener {
	listener.onGameEnd = onGameEnd
	return listener
}

func (listener *StatsListener) invokeSelect(selection Selection) {
	listener.moves++
	if listener.onSelect != nil && listener.moves%max(1, listener.nMoves) == 0 {
		listener.onSelect(selection)
	}
}

func (listener *StatsListener) invokeGameEnd(result GameResult) {
	listener.moves = 0
	if listener.onGameEnd != nil {
		listener.onGameEnd(result)
	}
}
