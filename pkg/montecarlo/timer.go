package montecarlo

import (
	"time"
)

type _Timer struct {
	start    time.Time
	duration time.Duration
}

func _NewTimer() *_Timer {
	return &_Timer{time.Now(), -1}
}

func (t *_Timer) IsSet() bool {
	return t.duration > 0
}

// Set the 'start' as now
func (t *_Timer) Reset() {
	t.start = time.Now()
}

func (t *_Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Time at which the movetime runs out, valid only if the timer is set
func (t *_Timer) Deadline() time.Time {
	return t.start.Add(t.duration)
}

// In milliseconds
func (t *_Timer) Movetime(movetime int) {
	if movetime <= 0 {
		t.duration = -1
	} else {
		t.duration = time.Duration(movetime) * time.Millisecond
	}
}
