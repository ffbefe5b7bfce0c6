package clock

import (
	"sync/atomic"
	"time"
)

// Loop is a Scheduler backed by real timers. When a timer fires, its callback
// is passed to dispatch rather than invoked, so the host can run it on its own
// event loop.
type Loop struct {
	dispatch func(func())
}

// NewLoop returns a Loop that hands expired callbacks to dispatch. dispatch is
// called from timer goroutines and must be safe for that.
func NewLoop(dispatch func(func())) *Loop {
	return &Loop{dispatch: dispatch}
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules f to be dispatched after d.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.dispatch(func() {
			// Stop may have run between expiry and dispatch.
			if t.done.CompareAndSwap(false, true) {
				f()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer *time.Timer
	done  atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if !t.done.CompareAndSwap(false, true) {
		return false
	}
	t.timer.Stop()
	return true
}
