// Package script replays comma-separated input steps against a carousel
// controller on a manual clock, for the simulate command and for tests.
//
// Steps:
//
//	next | prev            OnKey
//	flip                   ToggleFlip
//	select:K               SelectIndex(K)
//	click:K                Click(K)
//	drag:OFFSET:VELOCITY   OnDragEnd
//	wait:MS                advance the clock
//	dispose                Dispose
package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/clock"
)

// ErrSyntax is returned by Parse for malformed steps.
var ErrSyntax = errors.New("script syntax error")

// Op is a step kind.
type Op string

const (
	OpNext    Op = "next"
	OpPrev    Op = "prev"
	OpFlip    Op = "flip"
	OpSelect  Op = "select"
	OpClick   Op = "click"
	OpDrag    Op = "drag"
	OpWait    Op = "wait"
	OpDispose Op = "dispose"
)

// Step is one parsed instruction.
type Step struct {
	Op     Op
	Index  int
	Sample carousel.GestureSample
	Wait   time.Duration
}

func (s Step) String() string {
	switch s.Op {
	case OpSelect, OpClick:
		return fmt.Sprintf("%s:%d", s.Op, s.Index)
	case OpDrag:
		return fmt.Sprintf("%s:%g:%g", s.Op, s.Sample.TotalOffset, s.Sample.Velocity)
	case OpWait:
		return fmt.Sprintf("%s:%d", s.Op, s.Wait.Milliseconds())
	default:
		return string(s.Op)
	}
}

// Parse splits src on commas and parses each step.
func Parse(src string) ([]Step, error) {
	var steps []Step
	for i, field := range strings.Split(src, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		step, err := parseStep(field)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d %q: %v", ErrSyntax, i+1, field, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(field string) (Step, error) {
	parts := strings.Split(strings.ToLower(field), ":")
	op := Op(parts[0])
	args := parts[1:]

	want := map[Op]int{
		OpNext: 0, OpPrev: 0, OpFlip: 0, OpDispose: 0,
		OpSelect: 1, OpClick: 1, OpWait: 1,
		OpDrag: 2,
	}
	n, ok := want[op]
	if !ok {
		return Step{}, fmt.Errorf("unknown step")
	}
	if len(args) != n {
		return Step{}, fmt.Errorf("want %d argument(s), got %d", n, len(args))
	}

	step := Step{Op: op}
	switch op {
	case OpSelect, OpClick:
		k, err := strconv.Atoi(args[0])
		if err != nil {
			return Step{}, err
		}
		step.Index = k
	case OpWait:
		ms, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return Step{}, err
		}
		if ms < 0 {
			return Step{}, fmt.Errorf("negative wait")
		}
		step.Wait = time.Duration(ms) * time.Millisecond
	case OpDrag:
		offset, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Step{}, err
		}
		velocity, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return Step{}, err
		}
		step.Sample = carousel.GestureSample{TotalOffset: offset, Velocity: velocity}
	}
	return step, nil
}

// Run applies steps in order and calls report after each with the resulting
// state. Operation errors (such as ErrDisposed) are reported, not fatal.
func Run(ctrl *carousel.Controller, clk *clock.Manual, steps []Step, report func(Step, carousel.State, error)) {
	for _, step := range steps {
		state, err := apply(ctrl, clk, step)
		if report != nil {
			report(step, state, err)
		}
	}
}

func apply(ctrl *carousel.Controller, clk *clock.Manual, step Step) (carousel.State, error) {
	switch step.Op {
	case OpNext:
		return ctrl.OnKey(carousel.KeyNext)
	case OpPrev:
		return ctrl.OnKey(carousel.KeyPrev)
	case OpFlip:
		return ctrl.ToggleFlip()
	case OpSelect:
		return ctrl.SelectIndex(step.Index)
	case OpClick:
		return ctrl.Click(step.Index)
	case OpDrag:
		return ctrl.OnDragEnd(step.Sample)
	case OpWait:
		clk.Advance(step.Wait)
		return ctrl.State(), nil
	case OpDispose:
		return ctrl.State(), ctrl.Dispose()
	default:
		return ctrl.State(), fmt.Errorf("%w: unknown step %q", ErrSyntax, step.Op)
	}
}
