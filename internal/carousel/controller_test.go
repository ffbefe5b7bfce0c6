package carousel

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/carousel/internal/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const transition = 800 * time.Millisecond

func newTestController(t *testing.T, n int, opts Options) (*Controller, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	opts.Clock = clk
	c, err := New(n, opts)
	if err != nil {
		t.Fatalf("New(%d) returned error: %v", n, err)
	}
	t.Cleanup(func() { _ = c.Dispose() })
	return c, clk
}

// mustState unwraps an operation result, failing the test on error. It is
// called as mustState(t)(c.Step(1)).
func mustState(t *testing.T) func(State, error) State {
	return func(s State, err error) State {
		t.Helper()
		if err != nil {
			t.Fatalf("operation returned error: %v", err)
		}
		return s
	}
}

func TestNew_InvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		n    int
		opts Options
	}{
		{"zero items", 0, Options{}},
		{"negative items", -3, Options{}},
		{"negative interval", 3, Options{AutoplayInterval: -time.Second}},
		{"negative transition", 3, Options{Transition: -time.Millisecond}},
		{"negative cooldown", 3, Options{ManualCooldown: -time.Millisecond}},
		{"negative threshold", 3, Options{SwipeThreshold: -1}},
		{"unknown policy", 3, Options{FlipPolicy: FlipPolicy(7)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.n, tc.opts)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("New error = %v, want ErrInvalidConfiguration", err)
			}
			if c != nil {
				t.Fatalf("New returned controller %v alongside error", c)
			}
		})
	}
}

func TestNew_InitialState(t *testing.T) {
	c, _ := newTestController(t, 5, Options{})
	want := State{}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
	if c.State().Phase() != PhaseIdle {
		t.Fatalf("Phase = %q, want idle", c.State().Phase())
	}
	if c.Len() != 5 {
		t.Fatalf("Len = %d, want 5", c.Len())
	}
}

func TestNew_StartIndexIsNormalized(t *testing.T) {
	c, _ := newTestController(t, 4, Options{StartIndex: -1})
	if got := c.State().ActiveIndex; got != 3 {
		t.Fatalf("ActiveIndex = %d, want 3", got)
	}
}

func TestNew_AutoplayArmedOnlyWhenEnabled(t *testing.T) {
	on, _ := newTestController(t, 3, Options{Autoplay: true})
	if !on.State().AutoplayArmed {
		t.Fatalf("AutoplayArmed = false, want true with autoplay enabled")
	}
	off, clk := newTestController(t, 3, Options{})
	if off.State().AutoplayArmed {
		t.Fatalf("AutoplayArmed = true, want false with autoplay disabled")
	}
	if clk.Pending() != 0 {
		t.Fatalf("Pending timers = %d, want 0", clk.Pending())
	}
}

func TestSelectIndex_WrapsAnyInteger(t *testing.T) {
	for n := 1; n <= 7; n++ {
		c, clk := newTestController(t, n, Options{})
		for k := -20; k <= 20; k++ {
			s := mustState(t)(c.SelectIndex(k))
			want := ((k % n) + n) % n
			if s.ActiveIndex != want {
				t.Fatalf("n=%d SelectIndex(%d) ActiveIndex = %d, want %d", n, k, s.ActiveIndex, want)
			}
			if !s.Locked {
				t.Fatalf("n=%d SelectIndex(%d) Locked = false, want true", n, k)
			}
			clk.Advance(transition)
		}
	}
}

func TestSelectIndex_DirectionFollowsShortestPath(t *testing.T) {
	c, clk := newTestController(t, 6, Options{})
	if s := mustState(t)(c.SelectIndex(5)); s.Direction != -1 {
		t.Fatalf("Direction = %d, want -1 for 0->5 in a ring of 6", s.Direction)
	}
	clk.Advance(transition)
	if s := mustState(t)(c.SelectIndex(1)); s.Direction != 1 {
		t.Fatalf("Direction = %d, want 1 for 5->1", s.Direction)
	}
	clk.Advance(transition)
	if s := mustState(t)(c.SelectIndex(1)); s.Direction != 0 {
		t.Fatalf("Direction = %d, want 0 for a move onto the active index", s.Direction)
	}
}

func TestLockedMovesAreAbsorbedWithoutMovingUnlock(t *testing.T) {
	c, clk := newTestController(t, 5, Options{})
	mustState(t)(c.Step(1))
	clk.Advance(transition / 2)

	busy := []func() (State, error){
		func() (State, error) { return c.Step(1) },
		func() (State, error) { return c.Step(-1) },
		func() (State, error) { return c.SelectIndex(4) },
		func() (State, error) { return c.OnKey(KeyNext) },
		func() (State, error) { return c.OnDragEnd(GestureSample{TotalOffset: -100, Velocity: -500}) },
		func() (State, error) { return c.Click(3) },
		func() (State, error) { return c.ToggleFlip() },
	}
	for i, op := range busy {
		s := mustState(t)(op())
		if s.ActiveIndex != 1 || !s.Locked || s.Flipped {
			t.Fatalf("op %d changed state while locked: %+v", i, s)
		}
	}

	clk.Advance(transition/2 - time.Millisecond)
	if !c.State().Locked {
		t.Fatalf("unlocked early; absorbed ops must not shorten the transition")
	}
	clk.Advance(time.Millisecond)
	if c.State().Locked {
		t.Fatalf("still locked at the original unlock time; absorbed ops must not extend it")
	}
}

func TestStep_ReturnsHomeAfterNSteps(t *testing.T) {
	for n := 1; n <= 6; n++ {
		c, clk := newTestController(t, n, Options{StartIndex: 2})
		start := c.State().ActiveIndex
		for i := 0; i < n; i++ {
			mustState(t)(c.Step(1))
			clk.Advance(transition)
		}
		if got := c.State().ActiveIndex; got != start {
			t.Fatalf("n=%d after %d steps ActiveIndex = %d, want %d", n, n, got, start)
		}
	}
}

func TestOnKey(t *testing.T) {
	c, clk := newTestController(t, 3, Options{})
	if s := mustState(t)(c.OnKey(KeyPrev)); s.ActiveIndex != 2 || s.Direction != -1 {
		t.Fatalf("OnKey(prev) = %+v, want active 2 direction -1", s)
	}
	clk.Advance(transition)
	if s := mustState(t)(c.OnKey(KeyNext)); s.ActiveIndex != 0 || s.Direction != 1 {
		t.Fatalf("OnKey(next) = %+v, want active 0 direction 1", s)
	}
	clk.Advance(transition)
	if s := mustState(t)(c.OnKey(Key("up"))); s.Locked {
		t.Fatalf("unknown key started a transition: %+v", s)
	}
}

// Flip blocks navigation until it is reversed.
func TestFlipBlocksNavigation(t *testing.T) {
	c, clk := newTestController(t, 5, Options{})

	if s := mustState(t)(c.Step(1)); s.ActiveIndex != 1 {
		t.Fatalf("Step(+1) ActiveIndex = %d, want 1", s.ActiveIndex)
	}
	clk.Advance(transition)

	if s := mustState(t)(c.ToggleFlip()); !s.Flipped || s.Phase() != PhaseFlipped {
		t.Fatalf("ToggleFlip = %+v, want flipped", s)
	}
	if s := mustState(t)(c.Step(1)); s.ActiveIndex != 1 || !s.Flipped || s.Locked {
		t.Fatalf("Step while flipped = %+v, want unchanged", s)
	}
	if s := mustState(t)(c.ToggleFlip()); s.Flipped {
		t.Fatalf("second ToggleFlip = %+v, want unflipped", s)
	}
	if s := mustState(t)(c.Step(1)); s.ActiveIndex != 2 {
		t.Fatalf("Step after unflip ActiveIndex = %d, want 2", s.ActiveIndex)
	}
}

func TestFlipResetsPolicyClearsFlipOnMove(t *testing.T) {
	moves := map[string]func(c *Controller) (State, error){
		"step":   func(c *Controller) (State, error) { return c.Step(1) },
		"select": func(c *Controller) (State, error) { return c.SelectIndex(3) },
		"key":    func(c *Controller) (State, error) { return c.OnKey(KeyPrev) },
		"click":  func(c *Controller) (State, error) { return c.Click(1) },
	}
	for name, move := range moves {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestController(t, 5, Options{FlipPolicy: FlipResets})
			mustState(t)(c.ToggleFlip())
			s := mustState(t)(move(c))
			if s.Flipped {
				t.Fatalf("Flipped = true after accepted move, want false")
			}
			if !s.Locked {
				t.Fatalf("Locked = false, want move to be accepted under FlipResets")
			}
		})
	}
}

func TestClick(t *testing.T) {
	c, clk := newTestController(t, 7, Options{})
	if s := mustState(t)(c.Click(5)); s.ActiveIndex != 5 || s.Direction != -1 {
		t.Fatalf("Click(5) = %+v, want active 5 direction -1 (offset -2)", s)
	}
	clk.Advance(transition)
	if s := mustState(t)(c.Click(5)); !s.Flipped || s.Locked {
		t.Fatalf("Click on active item = %+v, want flip without lock", s)
	}
}

// Swipe power against the threshold decides the step.
func TestOnDragEnd(t *testing.T) {
	cases := []struct {
		name   string
		sample GestureSample
		want   int
		locked bool
	}{
		{"confident left swipe", GestureSample{TotalOffset: -50, Velocity: -300}, 1, true},
		{"confident right swipe", GestureSample{TotalOffset: 50, Velocity: 300}, 4, true},
		{"weak swipe", GestureSample{TotalOffset: -10, Velocity: -200}, 0, false},
		{"exactly threshold", GestureSample{TotalOffset: 100, Velocity: -100}, 0, false},
		{"no movement", GestureSample{}, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestController(t, 5, Options{SwipeThreshold: 10000})
			s := mustState(t)(c.OnDragEnd(tc.sample))
			if s.ActiveIndex != tc.want || s.Locked != tc.locked {
				t.Fatalf("OnDragEnd(%+v) = %+v, want active %d locked %v", tc.sample, s, tc.want, tc.locked)
			}
		})
	}
}

// Ticks fire on cadence and never catch up on missed time.
func TestAutoplayTicksOnCadence(t *testing.T) {
	c, clk := newTestController(t, 3, Options{
		Autoplay:         true,
		AutoplayInterval: 100 * time.Millisecond,
		Transition:       50 * time.Millisecond,
	})
	var seen []int
	c.opts.OnChange = func(s State) {
		if s.Locked {
			seen = append(seen, s.ActiveIndex)
		}
	}

	clk.Advance(250 * time.Millisecond)
	if diff := cmp.Diff([]int{1, 2}, seen); diff != "" {
		t.Fatalf("autoplay moves mismatch (-want +got):\n%s", diff)
	}
	if got := c.State().ActiveIndex; got != 2 {
		t.Fatalf("ActiveIndex = %d, want 2", got)
	}
}

func TestAutoplaySkipsTicksWhileLocked(t *testing.T) {
	c, clk := newTestController(t, 5, Options{
		Autoplay:         true,
		AutoplayInterval: 100 * time.Millisecond,
		Transition:       150 * time.Millisecond,
	})
	// Ticks at 100 (accepted, locked until 250), 200 (skipped), 300 (accepted).
	clk.Advance(300 * time.Millisecond)
	if got := c.State().ActiveIndex; got != 2 {
		t.Fatalf("ActiveIndex = %d, want 2", got)
	}
}

func TestManualMovePostponesAutoplay(t *testing.T) {
	c, clk := newTestController(t, 5, Options{
		Autoplay:         true,
		AutoplayInterval: 100 * time.Millisecond,
		Transition:       10 * time.Millisecond,
		ManualCooldown:   1000 * time.Millisecond,
	})
	mustState(t)(c.Step(1))
	if !c.State().AutoplayArmed {
		t.Fatalf("AutoplayArmed = false, want cool-down armed")
	}

	clk.Advance(1099 * time.Millisecond)
	if got := c.State().ActiveIndex; got != 1 {
		t.Fatalf("ActiveIndex = %d before cool-down plus interval, want 1", got)
	}
	clk.Advance(time.Millisecond)
	if got := c.State().ActiveIndex; got != 2 {
		t.Fatalf("ActiveIndex = %d after cool-down plus interval, want 2", got)
	}
}

func TestAutoplayStopsWhileFlipped(t *testing.T) {
	c, clk := newTestController(t, 5, Options{
		Autoplay:         true,
		AutoplayInterval: 100 * time.Millisecond,
		Transition:       10 * time.Millisecond,
	})
	s := mustState(t)(c.ToggleFlip())
	if s.AutoplayArmed {
		t.Fatalf("AutoplayArmed = true while flipped, want false")
	}
	clk.Advance(time.Second)
	if got := c.State().ActiveIndex; got != 0 {
		t.Fatalf("ActiveIndex = %d while flipped, want 0", got)
	}

	s = mustState(t)(c.ToggleFlip())
	if !s.AutoplayArmed {
		t.Fatalf("AutoplayArmed = false after unflip, want true")
	}
	clk.Advance(100 * time.Millisecond)
	if got := c.State().ActiveIndex; got != 1 {
		t.Fatalf("ActiveIndex = %d one interval after unflip, want 1", got)
	}
}

func TestAutoplayDisabledIgnoresCooldown(t *testing.T) {
	c, clk := newTestController(t, 5, Options{Transition: 10 * time.Millisecond})
	mustState(t)(c.Step(1))
	clk.Advance(time.Minute)
	if s := c.State(); s.ActiveIndex != 1 || s.AutoplayArmed {
		t.Fatalf("state = %+v, want active 1 with autoplay unarmed", s)
	}
}

func TestOnChangeReportsUnlock(t *testing.T) {
	var got []State
	c, clk := newTestController(t, 3, Options{OnChange: func(s State) { got = append(got, s) }})
	mustState(t)(c.Step(1))
	clk.Advance(transition)

	want := []State{
		{ActiveIndex: 1, Locked: true, Direction: 1},
		{ActiveIndex: 1, Direction: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("OnChange states mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	c, _ := newTestController(t, 4, Options{StartIndex: 1})
	got := map[int]int{}
	c.Render(func(index, offset int) { got[index] = offset })
	want := map[int]int{0: -1, 1: 0, 2: 1, 3: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Render offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestDispose(t *testing.T) {
	c, clk := newTestController(t, 3, Options{Autoplay: true})
	mustState(t)(c.Step(1))
	if clk.Pending() == 0 {
		t.Fatalf("expected pending timers before Dispose")
	}

	if err := c.Dispose(); err != nil {
		t.Fatalf("Dispose returned error: %v", err)
	}
	if err := c.Dispose(); err != nil {
		t.Fatalf("second Dispose returned error: %v", err)
	}
	if clk.Pending() != 0 {
		t.Fatalf("Pending timers after Dispose = %d, want 0", clk.Pending())
	}

	ops := map[string]func() (State, error){
		"SelectIndex": func() (State, error) { return c.SelectIndex(0) },
		"Step":        func() (State, error) { return c.Step(1) },
		"ToggleFlip":  c.ToggleFlip,
		"OnDragEnd":   func() (State, error) { return c.OnDragEnd(GestureSample{}) },
		"OnKey":       func() (State, error) { return c.OnKey(KeyNext) },
		"Click":       func() (State, error) { return c.Click(0) },
	}
	for name, op := range ops {
		if _, err := op(); !errors.Is(err, ErrDisposed) {
			t.Fatalf("%s after Dispose error = %v, want ErrDisposed", name, err)
		}
	}
}

func TestLogsTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c, clk := newTestController(t, 3, Options{Logger: zap.New(core)})
	mustState(t)(c.Step(1))
	clk.Advance(transition)

	started := logs.FilterMessage("transition started").All()
	if len(started) != 1 {
		t.Fatalf("transition started entries = %d, want 1", len(started))
	}
	fields := started[0].ContextMap()
	if fields["source"] != "step" || fields["to"] != int64(1) {
		t.Fatalf("transition fields = %v, want source=step to=1", fields)
	}
	if logs.FilterMessage("transition finished").Len() != 1 {
		t.Fatalf("missing transition finished entry")
	}
}

func TestNew_LogsConstructionFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	if _, err := New(0, Options{Logger: zap.New(core)}); err == nil {
		t.Fatalf("New(0) returned nil error")
	}
	if logs.FilterMessage("carousel construction failed").Len() != 1 {
		t.Fatalf("missing construction failure log entry")
	}
}
