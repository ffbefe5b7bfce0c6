package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/deck"
	"github.com/five82/carousel/internal/logging"
	"github.com/five82/carousel/internal/prefs"
	"github.com/five82/carousel/internal/ui"
)

// Options configure the carousel viewer.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/carousel/prefs.toml
	LogFile    string // overrides log_file from the config
	Debug      bool   // forces debug logging
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile := cfg.LogFile
	if opts.LogFile != "" {
		logFile = opts.LogFile
	}
	logger, err := logging.New(logFile, cfg.Debug || opts.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	showcases, err := Showcases(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting viewer",
		zap.Int("showcases", len(showcases)),
		zap.String("theme", userPrefs.Theme),
		zap.String("tab", userPrefs.Tab))

	return ui.Run(ctx, ui.Options{
		Showcases: showcases,
		Logger:    logger,
		ThemeName: userPrefs.Theme,
		Tab:       userPrefs.Tab,
		PrefsPath: prefsPath,
	})
}

// Showcases resolves the deck of every configured showcase, in tab order.
func Showcases(cfg config.Config) ([]ui.Showcase, error) {
	sections := []struct {
		name     string
		settings config.Carousel
	}{
		{"projects", cfg.Projects},
		{"skills", cfg.Skills},
		{"about", cfg.About},
	}

	showcases := make([]ui.Showcase, 0, len(sections))
	for _, s := range sections {
		d, err := deck.Resolve(s.name, s.settings.Deck)
		if err != nil {
			return nil, fmt.Errorf("load %s deck: %w", s.name, err)
		}
		showcases = append(showcases, ui.Showcase{Name: s.name, Deck: d, Settings: s.settings})
	}
	return showcases, nil
}
