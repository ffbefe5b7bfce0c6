// Package clock provides the scheduling seam used by carousel controllers.
//
// # Overview
//
// Controllers never call the time package directly. They ask a Scheduler for
// one-shot timers and expect every callback to run on the same logical thread
// that invokes their public methods. Two implementations cover the two kinds
// of host:
//
//   - Manual: a deterministic clock advanced explicitly. Used by tests, by
//     headless script replay and by the bubbletea host, which advances it to
//     wall time on every frame tick. Timers fire in deadline order during
//     Advance, and callbacks may schedule further timers that fire within the
//     same Advance when they fall due.
//   - Loop: real timers whose callbacks are handed to a dispatch function
//     instead of running on the timer goroutine. A host with its own event
//     queue dispatches into it. Controllers built without a Clock use a Loop
//     that runs callbacks on the timer goroutine and serialize them with
//     their own mutex.
//
// # Cancellation
//
// Stop is safe to call at any point, including after the callback has been
// dispatched but before the host has run it. In that case the callback is
// dropped and Stop reports true.
//
// Neither implementation is safe for concurrent use from multiple goroutines
// except for Loop timers firing, which only touch the dispatch function.
package clock
