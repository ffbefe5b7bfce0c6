package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/clock"
	"github.com/five82/carousel/internal/config"
	"github.com/five82/carousel/internal/deck"
)

// Showcase describes one tab: its deck and controller settings.
type Showcase struct {
	Name     string
	Deck     deck.Deck
	Settings config.Carousel
}

// pane is a showcase bound to its controller.
type pane struct {
	name string
	deck deck.Deck
	ctrl *carousel.Controller
}

func newPane(s Showcase, clk clock.Scheduler, logger *zap.Logger) (*pane, error) {
	opts := s.Settings.Options()
	opts.Clock = clk
	opts.Logger = logger.Named(s.Name)
	ctrl, err := carousel.New(s.Deck.Len(), opts)
	if err != nil {
		return nil, fmt.Errorf("showcase %s: %w", s.Name, err)
	}
	return &pane{name: s.Name, deck: s.Deck, ctrl: ctrl}, nil
}

// title is the tab label.
func (p *pane) title() string {
	if p.deck.Name != "" {
		return p.deck.Name
	}
	return p.name
}

// visible maps each on-screen offset to its item index.
func (p *pane) visible() map[int]int {
	out := make(map[int]int, maxSlotOffset*2+1)
	p.ctrl.Render(func(index, offset int) {
		if offset >= -maxSlotOffset && offset <= maxSlotOffset {
			out[offset] = index
		}
	})
	return out
}

// Card row geometry

const (
	maxSlotOffset = 2
	cardTop       = 2 // header line plus one blank line
	cardHeight    = 11
	slotGap       = 1
	minCardWidth  = 16
	maxCardWidth  = 30
)

// slot is the horizontal extent of one card position, in cells.
type slot struct {
	offset int
	x      int
	width  int
	height int
}

// layoutSlots places the five card positions centered in width.
func layoutSlots(width int) []slot {
	base := width / 5
	if base < minCardWidth {
		base = minCardWidth
	}
	if base > maxCardWidth {
		base = maxCardWidth
	}

	sizes := map[int][2]int{
		-2: {base - 6, cardHeight - 4},
		-1: {base, cardHeight - 2},
		0:  {base + 6, cardHeight},
		1:  {base, cardHeight - 2},
		2:  {base - 6, cardHeight - 4},
	}

	total := slotGap * (2 * maxSlotOffset)
	for off := -maxSlotOffset; off <= maxSlotOffset; off++ {
		total += sizes[off][0]
	}
	x := (width - total) / 2
	if x < 0 {
		x = 0
	}

	slots := make([]slot, 0, 2*maxSlotOffset+1)
	for off := -maxSlotOffset; off <= maxSlotOffset; off++ {
		s := slot{offset: off, x: x, width: sizes[off][0], height: sizes[off][1]}
		slots = append(slots, s)
		x += s.width + slotGap
	}
	return slots
}

// slotAt returns the slot under cell (x, y).
func slotAt(slots []slot, x, y int) (slot, bool) {
	if y < cardTop || y >= cardTop+cardHeight {
		return slot{}, false
	}
	for _, s := range slots {
		if x >= s.x && x < s.x+s.width {
			return s, true
		}
	}
	return slot{}, false
}

// renderCards renders the card row for the pane.
func (p *pane) renderCards(styles Styles, width int) string {
	slots := layoutSlots(width)
	state := p.ctrl.State()
	visible := p.visible()

	var b strings.Builder
	cells := make([]string, 0, len(slots))
	for i, s := range slots {
		if i > 0 {
			cells = append(cells, strings.Repeat(" ", slotGap))
		}
		index, ok := visible[s.offset]
		if !ok {
			cells = append(cells, lipgloss.NewStyle().Width(s.width).Render(""))
			continue
		}
		flipped := s.offset == 0 && state.Flipped
		cells = append(cells, renderCard(styles, p.deck.Items[index], s, flipped))
	}

	if len(slots) > 0 {
		b.WriteString(strings.Repeat(" ", slots[0].x))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, cells...))
	return b.String()
}

// renderCard draws one item in a slot. The style width excludes the border.
func renderCard(styles Styles, item deck.Item, s slot, flipped bool) string {
	style := styles.SlotStyle(s.offset, flipped).
		Width(s.width - 2).
		Height(s.height - 2).
		MaxHeight(s.height)
	inner := s.width - 4

	var lines []string
	switch {
	case flipped:
		lines = append(lines, styles.AccentText.Bold(true).Render(item.Title))
		body := item.Description
		if body == "" {
			body = item.Subtitle
		}
		lines = append(lines, "", body)
		if len(item.Tags) > 0 {
			lines = append(lines, "", styles.InfoText.Render(strings.Join(item.Tags, " · ")))
		}
	case s.offset == 0:
		lines = append(lines, styles.Text.Bold(true).Render(item.Title))
		if item.Category != "" {
			lines = append(lines, styles.BadgeStyle(item.Category).MaxWidth(inner).Render(item.Category))
		}
		if item.Subtitle != "" {
			lines = append(lines, "", styles.MutedText.Render(item.Subtitle))
		}
		if len(item.Tags) > 0 {
			lines = append(lines, "", styles.FaintText.Render(strings.Join(item.Tags, " · ")))
		}
	default:
		lines = append(lines, item.Title)
		if item.Category != "" && (s.offset == 1 || s.offset == -1) {
			lines = append(lines, styles.MutedText.Render(item.Category))
		}
	}
	return style.Render(strings.Join(lines, "\n"))
}

// renderStatus renders the counter and state markers under the cards.
func (p *pane) renderStatus(styles Styles) string {
	state := p.ctrl.State()
	parts := []string{styles.Text.Bold(true).Render(counter(state.ActiveIndex, p.ctrl.Len()))}

	switch state.Direction {
	case 1:
		parts = append(parts, styles.MutedText.Render("→"))
	case -1:
		parts = append(parts, styles.MutedText.Render("←"))
	}
	if state.Locked {
		parts = append(parts, styles.WarningText.Render("moving"))
	}
	if state.Flipped {
		parts = append(parts, styles.AccentText.Render("flipped"))
	}
	if state.AutoplayArmed {
		parts = append(parts, styles.SuccessText.Render("autoplay"))
	}
	return strings.Join(parts, "  ")
}

// counter formats a 1-based position like "01 / 05".
func counter(active, n int) string {
	return fmt.Sprintf("%02d / %02d", active+1, n)
}
