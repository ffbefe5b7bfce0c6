package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/clock"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/script"
)

type simulateFlags struct {
	items      int
	start      int
	script     string
	autoplay   bool
	interval   time.Duration
	transition time.Duration
	cooldown   time.Duration
	threshold  float64
	policy     string
	json       bool
}

func newSimulateCmd(root *rootFlags) *cobra.Command {
	var f simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay an input script against a controller",
		Long: `simulate drives one carousel headlessly on a virtual clock and prints the
state after every step. Steps are comma-separated:

  next, prev, flip, select:K, click:K, drag:OFFSET:VELOCITY, wait:MS, dispose`,
		Example: `  carousel simulate --items 5 --script "next,wait:800,flip,next"
  carousel simulate --autoplay --script "wait:3500,wait:3500" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.script == "" {
				return errors.New("--script is required")
			}
			logger, err := logging.New(root.logFile, root.debug)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			policy, err := carousel.ParseFlipPolicy(f.policy)
			if err != nil {
				return err
			}
			steps, err := script.Parse(f.script)
			if err != nil {
				return err
			}

			clk := clock.NewManual(time.Unix(0, 0).UTC())
			ctrl, err := carousel.New(f.items, carousel.Options{
				StartIndex:       f.start,
				Autoplay:         f.autoplay,
				AutoplayInterval: f.interval,
				Transition:       f.transition,
				ManualCooldown:   f.cooldown,
				SwipeThreshold:   f.threshold,
				FlipPolicy:       policy,
				Clock:            clk,
				Logger:           logger,
			})
			if err != nil {
				return err
			}
			defer func() { _ = ctrl.Dispose() }()

			out := cmd.OutOrStdout()
			printer := textPrinter(out)
			if f.json {
				printer = jsonPrinter(out)
			}
			printer(simulateRecord{Step: "start", At: 0, State: ctrl.State()})

			var printErr error
			script.Run(ctrl, clk, steps, func(step script.Step, s carousel.State, err error) {
				rec := simulateRecord{Step: step.String(), At: clk.Now().Sub(time.Unix(0, 0)).Milliseconds(), State: s}
				if err != nil {
					rec.Error = err.Error()
				}
				if perr := printer(rec); perr != nil && printErr == nil {
					printErr = perr
				}
			})
			return printErr
		},
	}

	defaults := carousel.DefaultOptions()
	cmd.Flags().IntVar(&f.items, "items", 5, "number of items")
	cmd.Flags().IntVar(&f.start, "start", 0, "start index")
	cmd.Flags().StringVar(&f.script, "script", "", "comma-separated steps")
	cmd.Flags().BoolVar(&f.autoplay, "autoplay", false, "enable autoplay")
	cmd.Flags().DurationVar(&f.interval, "interval", defaults.AutoplayInterval, "autoplay interval")
	cmd.Flags().DurationVar(&f.transition, "transition", defaults.Transition, "transition lock duration")
	cmd.Flags().DurationVar(&f.cooldown, "cooldown", defaults.ManualCooldown, "autoplay pause after manual input")
	cmd.Flags().Float64Var(&f.threshold, "threshold", defaults.SwipeThreshold, "swipe power threshold")
	cmd.Flags().StringVar(&f.policy, "policy", carousel.FlipBlocks.String(), "navigation while flipped: block or reset")
	cmd.Flags().BoolVar(&f.json, "json", false, "print one JSON object per step")
	return cmd
}

type simulateRecord struct {
	Step  string         `json:"step"`
	At    int64          `json:"at_ms"`
	State carousel.State `json:"state"`
	Error string         `json:"error,omitempty"`
}

func textPrinter(w io.Writer) func(simulateRecord) error {
	return func(r simulateRecord) error {
		s := r.State
		line := fmt.Sprintf("%6dms  %-16s active=%d phase=%s dir=%+d autoplay=%t",
			r.At, r.Step, s.ActiveIndex, s.Phase(), s.Direction, s.AutoplayArmed)
		if r.Error != "" {
			line += "  error: " + r.Error
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}
}

func jsonPrinter(w io.Writer) func(simulateRecord) error {
	enc := json.NewEncoder(w)
	return func(r simulateRecord) error {
		return enc.Encode(r)
	}
}
