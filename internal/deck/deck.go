// Package deck loads the item sets shown by the carousels.
package deck

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Item is one card. The carousel never reads it; only the host renders it.
type Item struct {
	Title       string   `toml:"title" yaml:"title"`
	Subtitle    string   `toml:"subtitle" yaml:"subtitle"`
	Category    string   `toml:"category" yaml:"category"`
	Description string   `toml:"description" yaml:"description"`
	Tags        []string `toml:"tags" yaml:"tags"`
}

// Deck is a named, ordered item set.
type Deck struct {
	Name  string `toml:"name" yaml:"name"`
	Items []Item `toml:"items" yaml:"items"`
}

// Format is a deck file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var (
	ErrEmpty   = errors.New("deck has no items")
	ErrFormat  = errors.New("unsupported deck format")
	ErrUnknown = errors.New("unknown built-in deck")
)

//go:embed builtin
var builtinFS embed.FS

var builtinFiles = map[string]string{
	"projects": "builtin/projects.toml",
	"skills":   "builtin/skills.yaml",
	"about":    "builtin/about.toml",
}

// Len returns the number of items.
func (d Deck) Len() int {
	return len(d.Items)
}

// FormatFor picks a format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
	}
}

// Load reads a deck file, choosing the decoder by extension.
func Load(path string) (Deck, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Deck{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return Deck{}, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(d.Name) == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return d, nil
}

// Parse decodes and validates a deck.
func Parse(data []byte, format Format) (Deck, error) {
	var d Deck
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &d); err != nil {
			return Deck{}, fmt.Errorf("parse deck: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return Deck{}, fmt.Errorf("parse deck: %w", err)
		}
	default:
		return Deck{}, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	if err := d.validate(); err != nil {
		return Deck{}, err
	}
	return d, nil
}

func (d *Deck) validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if len(d.Items) == 0 {
		return ErrEmpty
	}
	for i := range d.Items {
		d.Items[i].Title = strings.TrimSpace(d.Items[i].Title)
		if d.Items[i].Title == "" {
			return fmt.Errorf("item %d has no title", i+1)
		}
	}
	return nil
}

// Builtin returns one of the embedded decks: "projects", "skills" or "about".
func Builtin(name string) (Deck, error) {
	file, ok := builtinFiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Deck{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	data, err := builtinFS.ReadFile(file)
	if err != nil {
		return Deck{}, fmt.Errorf("read built-in deck: %w", err)
	}
	format, err := FormatFor(file)
	if err != nil {
		return Deck{}, err
	}
	return Parse(data, format)
}

// Resolve loads path when set and the named built-in deck otherwise.
func Resolve(name, path string) (Deck, error) {
	if strings.TrimSpace(path) != "" {
		return Load(path)
	}
	return Builtin(name)
}
