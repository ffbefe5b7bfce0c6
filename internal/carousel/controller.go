package carousel

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/carousel/internal/clock"
)

// Key is a navigation key forwarded by the host.
type Key string

const (
	KeyNext Key = "next"
	KeyPrev Key = "prev"
)

// Controller sequences selection over a fixed ring of items. It is safe for
// concurrent use: public methods and timer callbacks are serialized by an
// internal mutex, whichever Clock runs the timers. OnChange is called after
// the mutex is released and may call back into the controller.
type Controller struct {
	mu       sync.Mutex
	pending  []State
	n        int
	opts     Options
	clock    clock.Scheduler
	logger   *zap.Logger
	state    State
	unlock   clock.Timer
	auto     *autoplay
	disposed bool
}

// New returns a controller over n items, Idle at the normalized start index.
// Autoplay is armed when opts.Autoplay is set.
func New(n int, opts Options) (*Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if n < 1 {
		err := fmt.Errorf("%w: item count %d, need at least 1", ErrInvalidConfiguration, n)
		logger.Warn("carousel construction failed", zap.Error(err))
		return nil, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		logger.Warn("carousel construction failed", zap.Int("items", n), zap.Error(err))
		return nil, err
	}

	c := &Controller{
		n:      n,
		opts:   opts,
		logger: opts.Logger,
		state:  State{ActiveIndex: wrap(opts.StartIndex, n)},
	}
	c.clock = serialScheduler{Scheduler: opts.Clock, run: c.run}
	c.auto = &autoplay{
		clock:    c.clock,
		interval: opts.AutoplayInterval,
		cooldown: opts.ManualCooldown,
		enabled:  opts.Autoplay,
		fire:     c.tick,
	}
	c.mu.Lock()
	defer c.unlockAndNotify()
	c.auto.start()

	c.logger.Debug("carousel created",
		zap.Int("items", n),
		zap.Bool("autoplay", opts.Autoplay),
		zap.Duration("interval", opts.AutoplayInterval),
		zap.Duration("transition", opts.Transition),
		zap.Duration("cooldown", opts.ManualCooldown),
		zap.Stringer("flip_policy", opts.FlipPolicy),
		zap.Object("state", c.snapshot()))
	return c, nil
}

// Len returns the number of items.
func (c *Controller) Len() int {
	return c.n
}

// State returns the current state. It remains readable after Dispose.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Render calls fn for every item with its offset from the active item.
func (c *Controller) Render(fn func(index, offset int)) {
	c.mu.Lock()
	active := c.state.ActiveIndex
	c.mu.Unlock()
	for i := 0; i < c.n; i++ {
		fn(i, Offset(i, active, c.n))
	}
}

// SelectIndex makes target (taken modulo the item count) active. While a
// transition is in flight the call is absorbed and the state is returned
// unchanged.
func (c *Controller) SelectIndex(target int) (State, error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return State{}, ErrDisposed
	}
	next := wrap(target, c.n)
	dir := sign(Offset(next, c.state.ActiveIndex, c.n))
	return c.manual(next, dir, "select"), nil
}

// Step moves by direction items, typically +1 or -1.
func (c *Controller) Step(direction int) (State, error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return State{}, ErrDisposed
	}
	return c.manual(c.state.ActiveIndex+direction, sign(direction), "step"), nil
}

// OnKey maps KeyNext and KeyPrev to Step(+1) and Step(-1). Other keys are
// ignored.
func (c *Controller) OnKey(key Key) (State, error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return State{}, ErrDisposed
	}
	switch key {
	case KeyNext:
		return c.manual(c.state.ActiveIndex+1, 1, "key"), nil
	case KeyPrev:
		return c.manual(c.state.ActiveIndex-1, -1, "key"), nil
	default:
		return c.snapshot(), nil
	}
}

// OnDragEnd converts a released drag into at most one step. A swipe power
// below -threshold advances, above +threshold goes back.
func (c *Controller) OnDragEnd(sample GestureSample) (State, error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return State{}, ErrDisposed
	}
	dir := sample.swipeStep(c.opts.SwipeThreshold)
	c.logger.Debug("drag released",
		zap.Float64("offset", sample.TotalOffset),
		zap.Float64("velocity", sample.Velocity),
		zap.Float64("power", sample.SwipePower()),
		zap.Int("step", dir))
	if dir == 0 {
		return c.snapshot(), nil
	}
	return c.manual(c.state.ActiveIndex+dir, dir, "drag"), nil
}

// ToggleFlip flips the active item. Autoplay is disarmed while flipped and
// restarted when flipped back. Absorbed during a transition.
func (c *Controller) ToggleFlip() (State, error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return State{}, ErrDisposed
	}
	return c.toggleFlip(), nil
}

func (c *Controller) toggleFlip() State {
	if c.state.Locked {
		c.logger.Debug("flip absorbed", zap.String("reason", "transitioning"))
		return c.snapshot()
	}
	c.state.Flipped = !c.state.Flipped
	if c.state.Flipped {
		c.auto.stop()
	} else {
		c.auto.start()
	}
	c.logger.Debug("flip toggled", zap.Object("state", c.snapshot()))
	c.emit()
	return c.snapshot()
}

// Click handles a click on the item at index. The active item flips; any
// other item is rotated to the center in a single transition.
func (c *Controller) Click(index int) (State, error) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return State{}, ErrDisposed
	}
	offset := Offset(index, c.state.ActiveIndex, c.n)
	if offset == 0 {
		return c.toggleFlip(), nil
	}
	return c.manual(c.state.ActiveIndex+offset, sign(offset), "click"), nil
}

// Dispose stops all timers. It is idempotent; every other operation fails
// with ErrDisposed afterwards.
func (c *Controller) Dispose() error {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return nil
	}
	c.disposed = true
	if c.unlock != nil {
		c.unlock.Stop()
		c.unlock = nil
	}
	c.auto.stop()
	c.logger.Debug("carousel disposed", zap.Object("state", c.snapshot()))
	return nil
}

// manual is a user-originated move: on success it postpones autoplay by the
// cool-down.
func (c *Controller) manual(target, direction int, source string) State {
	if c.move(target, direction, source) {
		c.auto.postpone()
		c.emit()
	}
	return c.snapshot()
}

// tick is the autoplay callback.
func (c *Controller) tick() {
	if c.disposed {
		return
	}
	if c.state.Locked || c.state.Flipped {
		c.logger.Debug("autoplay tick skipped", zap.Object("state", c.snapshot()))
		return
	}
	if c.move(c.state.ActiveIndex+1, 1, "autoplay") {
		c.emit()
	}
}

// move starts a transition to target and reports whether it was accepted.
func (c *Controller) move(target, direction int, source string) bool {
	if c.state.Locked {
		c.logger.Debug("move absorbed", zap.String("source", source), zap.String("reason", "transitioning"))
		return false
	}
	if c.state.Flipped && c.opts.FlipPolicy == FlipBlocks {
		c.logger.Debug("move absorbed", zap.String("source", source), zap.String("reason", "flipped"))
		return false
	}

	from := c.state.ActiveIndex
	c.state.ActiveIndex = wrap(target, c.n)
	c.state.Direction = direction
	c.state.Flipped = false
	c.state.Locked = true
	c.unlock = c.clock.AfterFunc(c.opts.Transition, c.release)

	c.logger.Debug("transition started",
		zap.String("source", source),
		zap.Int("from", from),
		zap.Int("to", c.state.ActiveIndex),
		zap.Int("direction", direction))
	return true
}

func (c *Controller) release() {
	c.unlock = nil
	if c.disposed {
		return
	}
	c.state.Locked = false
	c.logger.Debug("transition finished", zap.Object("state", c.snapshot()))
	c.emit()
}

func (c *Controller) snapshot() State {
	s := c.state
	s.AutoplayArmed = c.auto.armed()
	return s
}

// emit queues the current state for OnChange. Queued states are delivered by
// unlockAndNotify once c.mu is released.
func (c *Controller) emit() {
	if c.opts.OnChange != nil {
		c.pending = append(c.pending, c.snapshot())
	}
}

func (c *Controller) unlockAndNotify() {
	pending := c.pending
	c.pending = nil
	onChange := c.opts.OnChange
	c.mu.Unlock()
	for _, s := range pending {
		onChange(s)
	}
}

// run is the entry point of every timer callback.
func (c *Controller) run(f func()) {
	c.mu.Lock()
	defer c.unlockAndNotify()
	if c.disposed {
		return
	}
	f()
}
