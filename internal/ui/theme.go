package ui

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and the active card
	SurfaceAlt string // Neighbouring cards

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Category badge palette, picked by hashing the category name
	Badges []string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Background)).
			Background(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		CardActive: card.
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		CardNear: card.
			BorderForeground(lipgloss.Color(t.Border)).
			Foreground(lipgloss.Color(t.Text)),

		CardFar: card.
			BorderForeground(lipgloss.Color(t.BorderMuted)).
			Foreground(lipgloss.Color(t.Faint)),

		CardBack: card.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Warning)).
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		badges:     t.Badges,
		background: t.Background,
		muted:      t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	InfoText    lipgloss.Style

	// Chrome
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Card slots
	CardActive lipgloss.Style
	CardNear   lipgloss.Style
	CardFar    lipgloss.Style
	CardBack   lipgloss.Style

	badges     []string
	background string
	muted      string
}

// BadgeStyle returns a stable badge style for a category.
func (s Styles) BadgeStyle(category string) lipgloss.Style {
	color := s.muted
	if len(s.badges) > 0 {
		h := fnv.New32a()
		_, _ = h.Write([]byte(category))
		color = s.badges[int(h.Sum32()%uint32(len(s.badges)))]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// SlotStyle returns the card style for an offset from the active card.
func (s Styles) SlotStyle(offset int, flipped bool) lipgloss.Style {
	switch {
	case offset == 0 && flipped:
		return s.CardBack
	case offset == 0:
		return s.CardActive
	case offset == 1 || offset == -1:
		return s.CardNear
	default:
		return s.CardFar
	}
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#21222C", // BGDark

		Border:      "#44475A", // Selection
		BorderMuted: "#21222C", // BGDark
		BorderFocus: "#BD93F9", // Purple

		Text:    "#F8F8F2", // Foreground
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A", // Selection
		Accent:  "#BD93F9", // Purple
		Success: "#50FA7B", // Green
		Warning: "#FFB86C", // Orange
		Danger:  "#FF5555", // Red
		Info:    "#8BE9FD", // Cyan

		Badges: []string{"#8BE9FD", "#BD93F9", "#FF79C6", "#50FA7B", "#FFB86C", "#F1FA8C"},
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500

		Badges: []string{"#38bdf8", "#8b5cf6", "#ec4899", "#22c55e", "#f59e0b", "#14b8a6"},
	}
}
