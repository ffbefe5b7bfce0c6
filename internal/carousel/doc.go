// Package carousel implements the controller behind rotating card showcases:
// the project gallery, the skills ticker and the about pager.
//
// # Overview
//
// A Controller owns the selection state for a fixed ring of N items. It never
// looks at the items themselves. Hosts forward raw input (keys, clicks, drag
// releases) and render each item from its offset to the active item:
//
//	host input ──> Controller.OnKey / Click / OnDragEnd / SelectIndex
//	                    │
//	                    ├─> State{ActiveIndex, Flipped, Locked, Direction}
//	                    └─> Options.OnChange(State)
//
//	host render ─> Controller.Render(func(index, offset int) { ... })
//
// # States
//
//   - Idle: accepts every operation and autoplay ticks.
//   - Transitioning (Locked): entered by any accepted move. Moves and flips are
//     absorbed until the transition timer fires.
//   - Flipped: entered from Idle by ToggleFlip. With FlipBlocks (the default)
//     navigation is absorbed until the item is flipped back; with FlipResets
//     navigation clears the flip and proceeds.
//
// Absorbed operations are not errors. They return the unchanged state and a
// nil error, because repeated input is routine.
//
// # Timing
//
// Two timers exist per controller, both created through a clock.Scheduler:
//
//   - unlock: one-shot, Options.Transition after each accepted move.
//   - autoplay: a recurring interval. Manual moves replace it with a one-shot
//     cool-down (Options.ManualCooldown) after which the interval restarts.
//     Flipping stops it; flipping back restarts it.
//
// Autoplay ticks that land while Locked or Flipped are skipped; the interval
// keeps its cadence.
//
// # Errors
//
// New fails with ErrInvalidConfiguration for N < 1, negative durations or
// thresholds, and unknown flip policies. After Dispose every operation except
// State, Len and Render fails with ErrDisposed.
package carousel
