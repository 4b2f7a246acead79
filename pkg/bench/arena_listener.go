package bench

// Distributes the arena's events to multiple listeners, in order
type ArenaListener struct {
	listeners []ListenerLike
}

func NewArenaListener(listeners ...ListenerLike) *ArenaListener {
	al := &ArenaListener{listeners: make([]ListenerLike, 0, len(listeners))}
	for _, l := range listeners {
		if l != nil {
			al.listeners = append(al.listeners, l)
		}
	}
	return al
}

func (al *ArenaListener) Add(listener ListenerLike) *ArenaListener {
	if listener != nil {
		al.listeners = append(al.listeners, listener)
	}
	return al
}

func (al *ArenaListener) OnStart(nGames int) {
	for _, l := range al.listeners {
		l.OnStart(nGames)
	}
}

func (al *ArenaListener) OnGameFinished(info GameInfo) {
	for _, l := range al.listeners {
		l.OnGameFinished(info)
	}
}

func (al *ArenaListener) OnFinishedWork(summaries []Summary) {
	for _, l := range al.listeners {
		l.OnFinishedWork(summaries)
	}
}
