package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/carousel/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "carousel: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every command.
type rootFlags struct {
	logFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	var (
		flags      rootFlags
		configPath string
		prefsPath  string
	)

	cmd := &cobra.Command{
		Use:   "carousel",
		Short: "Terminal showcase carousels",
		Long: `carousel shows the projects, skills and about showcases as rotating
card carousels. Cards advance on their own, on arrow keys, clicks and swipes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: configPath,
				PrefsPath:  prefsPath,
				LogFile:    flags.logFile,
				Debug:      flags.debug,
			})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config path (default ~/.config/carousel/config.toml)")
	cmd.Flags().StringVar(&prefsPath, "prefs", "", "prefs path (default ~/.config/carousel/prefs.toml)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write JSON logs to this file")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "log at debug level")

	cmd.AddCommand(newSimulateCmd(&flags))
	cmd.AddCommand(newOffsetsCmd())
	return cmd
}
