package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/carousel/internal/carousel"
)

func newOffsetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "offsets N ACTIVE",
		Short:   "Print the circular offset of every item",
		Example: "  carousel offsets 5 0\n  0:0 1:1 2:2 3:-2 4:-1",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse N: %w", err)
			}
			active, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse ACTIVE: %w", err)
			}
			if n < 1 {
				return fmt.Errorf("%w: N must be at least 1", carousel.ErrInvalidConfiguration)
			}

			parts := make([]string, n)
			for i := range parts {
				parts[i] = fmt.Sprintf("%d:%d", i, carousel.Offset(i, active, n))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return err
		},
	}
}
