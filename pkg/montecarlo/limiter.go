package montecarlo

import (
	"context"
	"errors"
	"sync"
	"time"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt StopReason = 1 // Stopped by the user, by calling Stop or by context cancellation
	StopMovetime  StopReason = 2 // Time limit reached (or the caller's deadline)
	StopFailure   StopReason = 4 // A rollout returned an error
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopFailure, "Failure"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

// Controls a single move selection: applies the movetime, allows stopping it
// from another goroutine and records why it was stopped
type Limiter struct {
	limits *Limits
	Timer  *_Timer
	mu     sync.Mutex
	cancel context.CancelFunc
	reason StopReason
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits: DefaultLimits(),
		Timer:  _NewTimer(),
	}
}

func (l *Limiter) SetLimits(limits *Limits) {
	if limits != nil {
		l.limits = limits
	}
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

// Start the selection: resets the timer and the stop reason, and returns the context
// the rollouts must run with. The returned cancel function must be called once the selection ends
func (l *Limiter) Start(ctx context.Context) (context.Context, context.CancelFunc) {
	l.Timer.Movetime(l.limits.Movetime)
	l.Timer.Reset()

	var cancel context.CancelFunc
	if l.Timer.IsSet() {
		ctx, cancel = context.WithDeadline(ctx, l.Timer.Deadline())
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	l.mu.Lock()
	l.cancel = cancel
	l.reason = StopNone
	l.mu.Unlock()

	return ctx, func() {
		l.mu.Lock()
		l.cancel = nil
		l.mu.Unlock()
		cancel()
	}
}

// Interrupt the running selection (if any), it will fail with ErrAggregationIncomplete
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.reason |= StopInterrupt
		l.cancel()
	}
}

// Set the stop reason based on the error, which ended the selection
func (l *Limiter) EvaluateStopReason(err error) StopReason {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		l.reason |= StopMovetime
	case errors.Is(err, context.Canceled):
		l.reason |= StopInterrupt
	default:
		l.reason |= StopFailure
	}
	return l.reason
}

// Get the reason why the last selection was stopped
func (l *Limiter) StopReason() StopReason {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reason
}

// Time elapsed since the last Start call
func (l *Limiter) Elapsed() time.Duration {
	return l.Timer.Elapsed()
}
