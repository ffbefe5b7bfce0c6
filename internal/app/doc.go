// Package app is the composition root of the carousel viewer.
//
// Run loads, in order:
//
//  1. config from ~/.config/carousel/config.toml (defaults when missing)
//  2. the zap logger (file sink from log_file or --log-file, no-op otherwise)
//  3. prefs from ~/.config/carousel/prefs.toml (theme and focused tab)
//  4. one deck per showcase, either the built-in deck or the configured file
//
// and then hands everything to ui.Run, which blocks until the user quits or
// the context is cancelled.
//
// Configuration and deck errors are fatal and returned wrapped. Prefs never
// fail; a broken prefs file falls back to defaults.
package app
