package carousel

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/carousel/internal/clock"
)

const (
	DefaultAutoplayInterval = 3500 * time.Millisecond
	DefaultTransition       = 800 * time.Millisecond
	DefaultManualCooldown   = 8000 * time.Millisecond
	DefaultSwipeThreshold   = 10000.0
)

// FlipPolicy decides what navigation does while the active item is flipped.
type FlipPolicy int

const (
	// FlipBlocks absorbs navigation until the item is flipped back.
	FlipBlocks FlipPolicy = iota
	// FlipResets clears the flip and lets the navigation proceed.
	FlipResets
)

func (p FlipPolicy) String() string {
	switch p {
	case FlipResets:
		return "reset"
	default:
		return "block"
	}
}

// ParseFlipPolicy maps "block" or "reset" to a FlipPolicy. Empty means block.
func ParseFlipPolicy(s string) (FlipPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "block":
		return FlipBlocks, nil
	case "reset":
		return FlipResets, nil
	default:
		return FlipBlocks, fmt.Errorf("%w: unknown flip policy %q", ErrInvalidConfiguration, s)
	}
}

// Options configure a Controller. Zero durations and a zero threshold take
// the package defaults.
type Options struct {
	StartIndex       int
	Autoplay         bool
	AutoplayInterval time.Duration
	Transition       time.Duration
	ManualCooldown   time.Duration
	SwipeThreshold   float64
	FlipPolicy       FlipPolicy

	// Clock schedules the unlock and autoplay timers. Nil uses real timers;
	// their callbacks run on timer goroutines under the controller mutex.
	Clock clock.Scheduler
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// OnChange is called with the new state after every accepted change,
	// including unlocks and autoplay ticks. It runs outside the controller
	// mutex, on the goroutine that caused the change.
	OnChange func(State)
}

// DefaultOptions returns the documented defaults with autoplay enabled.
func DefaultOptions() Options {
	return Options{
		Autoplay:         true,
		AutoplayInterval: DefaultAutoplayInterval,
		Transition:       DefaultTransition,
		ManualCooldown:   DefaultManualCooldown,
		SwipeThreshold:   DefaultSwipeThreshold,
	}
}

func (o Options) withDefaults() (Options, error) {
	switch {
	case o.AutoplayInterval < 0:
		return o, fmt.Errorf("%w: autoplay interval %v is negative", ErrInvalidConfiguration, o.AutoplayInterval)
	case o.Transition < 0:
		return o, fmt.Errorf("%w: transition %v is negative", ErrInvalidConfiguration, o.Transition)
	case o.ManualCooldown < 0:
		return o, fmt.Errorf("%w: manual cooldown %v is negative", ErrInvalidConfiguration, o.ManualCooldown)
	case o.SwipeThreshold < 0:
		return o, fmt.Errorf("%w: swipe threshold %v is negative", ErrInvalidConfiguration, o.SwipeThreshold)
	case o.FlipPolicy != FlipBlocks && o.FlipPolicy != FlipResets:
		return o, fmt.Errorf("%w: unknown flip policy %d", ErrInvalidConfiguration, int(o.FlipPolicy))
	}

	if o.AutoplayInterval == 0 {
		o.AutoplayInterval = DefaultAutoplayInterval
	}
	if o.Transition == 0 {
		o.Transition = DefaultTransition
	}
	if o.ManualCooldown == 0 {
		o.ManualCooldown = DefaultManualCooldown
	}
	if o.SwipeThreshold == 0 {
		o.SwipeThreshold = DefaultSwipeThreshold
	}
	if o.Clock == nil {
		o.Clock = clock.NewLoop(func(f func()) { f() })
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o, nil
}
