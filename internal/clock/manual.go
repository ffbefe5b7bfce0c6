package clock

import (
	"time"
)

// Manual is a Scheduler whose time only moves when Advance or AdvanceTo is
// called. It is not safe for concurrent use.
type Manual struct {
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock *Manual
	when  time.Time
	seq   uint64
	f     func()
	done  bool
}

// NewManual returns a manual clock reading start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current reading.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules f to run once the clock has advanced by d. Negative
// durations are treated as zero.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{clock: m, when: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d and returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	return m.AdvanceTo(m.now.Add(d))
}

// AdvanceTo moves the clock to target, running every timer whose deadline is
// at or before target in deadline order. The clock reads each timer's
// deadline while its callback runs. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(target time.Time) int {
	fired := 0
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.remove(t)
		t.done = true
		if t.when.After(m.now) {
			m.now = t.when
		}
		t.f()
		fired++
	}
	if target.After(m.now) {
		m.now = target
	}
	return fired
}

// Pending returns the number of scheduled timers that have not fired or been
// stopped.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// NextDeadline returns the earliest pending deadline.
func (m *Manual) NextDeadline() (time.Time, bool) {
	var earliest *manualTimer
	for _, t := range m.timers {
		if earliest == nil || t.before(earliest) {
			earliest = t
		}
	}
	if earliest == nil {
		return time.Time{}, false
	}
	return earliest.when, true
}

func (m *Manual) next(target time.Time) *manualTimer {
	var earliest *manualTimer
	for _, t := range m.timers {
		if t.when.After(target) {
			continue
		}
		if earliest == nil || t.before(earliest) {
			earliest = t
		}
	}
	return earliest
}

func (m *Manual) remove(t *manualTimer) {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) before(other *manualTimer) bool {
	if t.when.Equal(other.when) {
		return t.seq < other.seq
	}
	return t.when.Before(other.when)
}

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}
