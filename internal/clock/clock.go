package clock

import "time"

// Timer is a pending callback created by a Scheduler.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// Scheduler creates one-shot timers. Recurring work reschedules itself from
// inside its callback.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
