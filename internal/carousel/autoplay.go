package carousel

import (
	"time"

	"github.com/five82/carousel/internal/clock"
)

// autoplay owns the single pending timer that drives self-advancing: either
// the recurring interval or the one-shot cool-down that precedes it.
type autoplay struct {
	clock    clock.Scheduler
	interval time.Duration
	cooldown time.Duration
	enabled  bool
	fire     func()
	timer    clock.Timer
}

// start (re)arms the recurring interval. The first fire is one interval away.
func (a *autoplay) start() {
	a.stop()
	if !a.enabled {
		return
	}
	a.timer = a.clock.AfterFunc(a.interval, a.onInterval)
}

// onInterval reschedules before firing so the cadence does not depend on
// what fire does.
func (a *autoplay) onInterval() {
	a.timer = a.clock.AfterFunc(a.interval, a.onInterval)
	a.fire()
}

// postpone stops the interval and restarts it once the cool-down has elapsed.
func (a *autoplay) postpone() {
	a.stop()
	if !a.enabled {
		return
	}
	a.timer = a.clock.AfterFunc(a.cooldown, a.start)
}

func (a *autoplay) stop() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *autoplay) armed() bool {
	return a.timer != nil
}
