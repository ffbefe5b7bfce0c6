package carousel

import (
	"math"
	"time"
)

// GestureSample summarizes one drag at release.
type GestureSample struct {
	TotalOffset float64 `json:"total_offset"`
	Velocity    float64 `json:"velocity"`
}

// SwipePower is |TotalOffset| * Velocity. Its sign follows the release
// velocity; its magnitude rewards long or fast drags.
func (s GestureSample) SwipePower() float64 {
	return math.Abs(s.TotalOffset) * s.Velocity
}

// swipeStep returns +1 for a confident leftward swipe, -1 for a confident
// rightward swipe and 0 otherwise.
func (s GestureSample) swipeStep(threshold float64) int {
	power := s.SwipePower()
	switch {
	case power < -threshold:
		return 1
	case power > threshold:
		return -1
	default:
		return 0
	}
}

// GestureTracker turns raw pointer positions along the carousel axis into a
// GestureSample. Velocity is measured over the most recent movement, in
// position units per second.
type GestureTracker struct {
	active   bool
	origin   float64
	lastPos  float64
	lastAt   time.Time
	velocity float64
}

// Begin starts a drag at pos.
func (g *GestureTracker) Begin(pos float64, at time.Time) {
	*g = GestureTracker{active: true, origin: pos, lastPos: pos, lastAt: at}
}

// Active reports whether a drag is in progress.
func (g *GestureTracker) Active() bool {
	return g.active
}

// Distance returns how far the pointer has moved from the drag origin.
func (g *GestureTracker) Distance() float64 {
	if !g.active {
		return 0
	}
	return g.lastPos - g.origin
}

// Move records a pointer position. Samples without elapsed time only update
// the position.
func (g *GestureTracker) Move(pos float64, at time.Time) {
	if !g.active {
		return
	}
	if dt := at.Sub(g.lastAt).Seconds(); dt > 0 {
		g.velocity = (pos - g.lastPos) / dt
		g.lastAt = at
	}
	g.lastPos = pos
}

// End finishes the drag and returns its sample. ok is false when no drag was
// in progress.
func (g *GestureTracker) End(pos float64, at time.Time) (sample GestureSample, ok bool) {
	if !g.active {
		return GestureSample{}, false
	}
	if pos != g.lastPos {
		g.Move(pos, at)
	}
	sample = GestureSample{TotalOffset: g.lastPos - g.origin, Velocity: g.velocity}
	g.Reset()
	return sample, true
}

// Reset abandons any drag in progress.
func (g *GestureTracker) Reset() {
	*g = GestureTracker{}
}
