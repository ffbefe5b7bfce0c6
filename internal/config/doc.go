// Package config loads carousel settings from a TOML file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/carousel/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing, keep the defaults for them
//
// # TOML Format
//
//	log_file = "~/.local/state/carousel/carousel.log"
//	debug = false
//
//	[projects]
//	autoplay = true
//	autoplay_interval_ms = 3500
//	transition_ms = 800
//	manual_cooldown_ms = 8000
//	swipe_threshold = 10000
//	flip_policy = "block"   # or "reset"
//	start_index = 0
//	deck = "~/decks/projects.yaml"
//
//	[skills]
//	...
//
//	[about]
//	...
//
// Durations are whole milliseconds. Tilde expansion is applied to log_file and
// deck paths.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML parse errors ("parse config: ...") and invalid values
// ("invalid [section]: ..."), the latter wrapping
// carousel.ErrInvalidConfiguration.
package config
