// Package prefs persists viewer state between runs: the color theme and the
// showcase that had focus. The file lives at ~/.config/carousel/prefs.toml.
//
// Prefs are a convenience, so Load never fails. Anything it cannot read or
// decode yields the defaults.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the persisted viewer state.
type Prefs struct {
	Theme string `toml:"theme"`
	Tab   string `toml:"tab"` // showcase name, e.g. "skills"
}

const (
	defaultPrefsPath = "~/.config/carousel/prefs.toml"
	defaultTheme     = "Dracula"
	defaultTab       = "projects"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// normalize trims values and fills blanks with defaults. Tab names are
// matched case-insensitively by the UI, so they are stored lower-case.
func (p Prefs) normalize() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.Tab = strings.ToLower(strings.TrimSpace(p.Tab))
	if p.Tab == "" {
		p.Tab = defaultTab
	}
	return p
}

// Load returns the prefs stored at path, or the defaults.
func Load(path string) Prefs {
	var p Prefs
	if resolved, err := resolvePath(path); err == nil {
		if data, err := os.ReadFile(resolved); err == nil {
			if err := toml.Unmarshal(data, &p); err != nil {
				p = Prefs{}
			}
		}
	}
	return p.normalize()
}

// Save writes p to path through a temporary file in the same directory, so
// a crash mid-write leaves the previous file intact.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	data, err := toml.Marshal(p.normalize())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("create temp prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// resolvePath expands a leading ~ and makes path absolute. Blank means the
// default location.
func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
