package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/carousel/internal/carousel"
)

// Config holds controller settings for the three showcases plus logging.
type Config struct {
	Projects Carousel
	Skills   Carousel
	About    Carousel
	LogFile  string
	Debug    bool
}

// Carousel holds the settings of one showcase.
type Carousel struct {
	Autoplay         bool
	AutoplayInterval time.Duration
	Transition       time.Duration
	ManualCooldown   time.Duration
	SwipeThreshold   float64
	FlipPolicy       carousel.FlipPolicy
	StartIndex       int
	Deck             string // empty uses the built-in deck
}

const defaultConfigPath = "~/.config/carousel/config.toml"

type rawCarousel struct {
	Autoplay           *bool    `toml:"autoplay"`
	AutoplayIntervalMS *int64   `toml:"autoplay_interval_ms"`
	TransitionMS       *int64   `toml:"transition_ms"`
	ManualCooldownMS   *int64   `toml:"manual_cooldown_ms"`
	SwipeThreshold     *float64 `toml:"swipe_threshold"`
	FlipPolicy         string   `toml:"flip_policy"`
	StartIndex         int      `toml:"start_index"`
	Deck               string   `toml:"deck"`
}

// Default returns the built-in settings. The project gallery flips and
// autoplays, the skills ticker autoplays quickly, the about pager only moves
// on input.
func Default() Config {
	return Config{
		Projects: Carousel{
			Autoplay:         true,
			AutoplayInterval: carousel.DefaultAutoplayInterval,
			Transition:       carousel.DefaultTransition,
			ManualCooldown:   carousel.DefaultManualCooldown,
			SwipeThreshold:   carousel.DefaultSwipeThreshold,
		},
		Skills: Carousel{
			Autoplay:         true,
			AutoplayInterval: 2 * time.Second,
			Transition:       600 * time.Millisecond,
			ManualCooldown:   carousel.DefaultManualCooldown,
			SwipeThreshold:   carousel.DefaultSwipeThreshold,
			FlipPolicy:       carousel.FlipResets,
		},
		About: Carousel{
			Transition:     500 * time.Millisecond,
			ManualCooldown: carousel.DefaultManualCooldown,
			SwipeThreshold: carousel.DefaultSwipeThreshold,
		},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Projects rawCarousel `toml:"projects"`
		Skills   rawCarousel `toml:"skills"`
		About    rawCarousel `toml:"about"`
		LogFile  string      `toml:"log_file"`
		Debug    bool        `toml:"debug"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	sections := []struct {
		name string
		raw  rawCarousel
		dst  *Carousel
	}{
		{"projects", raw.Projects, &cfg.Projects},
		{"skills", raw.Skills, &cfg.Skills},
		{"about", raw.About, &cfg.About},
	}
	for _, s := range sections {
		if err := s.raw.apply(s.dst); err != nil {
			return Config{}, fmt.Errorf("invalid [%s]: %w", s.name, err)
		}
	}

	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.Debug = raw.Debug

	return cfg, nil
}

func (r rawCarousel) apply(dst *Carousel) error {
	if r.Autoplay != nil {
		dst.Autoplay = *r.Autoplay
	}
	if r.AutoplayIntervalMS != nil {
		dst.AutoplayInterval = time.Duration(*r.AutoplayIntervalMS) * time.Millisecond
	}
	if r.TransitionMS != nil {
		dst.Transition = time.Duration(*r.TransitionMS) * time.Millisecond
	}
	if r.ManualCooldownMS != nil {
		dst.ManualCooldown = time.Duration(*r.ManualCooldownMS) * time.Millisecond
	}
	if r.SwipeThreshold != nil {
		dst.SwipeThreshold = *r.SwipeThreshold
	}
	if strings.TrimSpace(r.FlipPolicy) != "" {
		policy, err := carousel.ParseFlipPolicy(r.FlipPolicy)
		if err != nil {
			return err
		}
		dst.FlipPolicy = policy
	}
	dst.StartIndex = r.StartIndex
	if deck := strings.TrimSpace(r.Deck); deck != "" {
		dst.Deck = mustExpand(deck)
	}

	if dst.AutoplayInterval < 0 || dst.Transition < 0 || dst.ManualCooldown < 0 || dst.SwipeThreshold < 0 {
		return fmt.Errorf("%w: durations and swipe_threshold must not be negative", carousel.ErrInvalidConfiguration)
	}
	return nil
}

// Options converts the settings into controller options. Clock, Logger and
// OnChange are left for the host to fill in.
func (c Carousel) Options() carousel.Options {
	return carousel.Options{
		StartIndex:       c.StartIndex,
		Autoplay:         c.Autoplay,
		AutoplayInterval: c.AutoplayInterval,
		Transition:       c.Transition,
		ManualCooldown:   c.ManualCooldown,
		SwipeThreshold:   c.SwipeThreshold,
		FlipPolicy:       c.FlipPolicy,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
