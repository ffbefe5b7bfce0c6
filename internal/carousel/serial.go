package carousel

import (
	"time"

	"github.com/five82/carousel/internal/clock"
)

// serialScheduler runs every callback through run, which holds the
// controller mutex.
type serialScheduler struct {
	clock.Scheduler
	run func(func())
}

func (s serialScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &serialTimer{}
	t.inner = s.Scheduler.AfterFunc(d, func() {
		s.run(func() {
			if t.stopped {
				return
			}
			t.fired = true
			f()
		})
	})
	return t
}

// serialTimer fields are only touched with the controller mutex held. A
// callback that expired but is still waiting for the mutex when Stop runs is
// dropped.
type serialTimer struct {
	inner   clock.Timer
	stopped bool
	fired   bool
}

func (t *serialTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.inner.Stop()
	return true
}
