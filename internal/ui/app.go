package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/carousel/internal/carousel"
	"github.com/five82/carousel/internal/clock"
	"github.com/five82/carousel/internal/prefs"
)

const (
	defaultFrame = 50 * time.Millisecond
	// cellPx converts terminal cells to the pixel-like units the swipe
	// threshold is calibrated for.
	cellPx = 8.0
	// dragCells is the travel below which a press and release is a click.
	dragCells = 2
)

// Options configures the UI.
type Options struct {
	Showcases []Showcase
	Logger    *zap.Logger
	ThemeName string
	Tab       string // showcase name focused at start
	PrefsPath string
	// Frame is the clock tick period. Defaults to 50ms.
	Frame time.Duration
	// Clock drives every controller. Defaults to a manual clock at the
	// current time, advanced on each frame.
	Clock *clock.Manual
	// Now timestamps pointer samples. Defaults to time.Now.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	logger    *zap.Logger
	prefsPath string
	frame     time.Duration
	clock     *clock.Manual
	now       func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Showcases
	panes  []*pane
	active int

	// Mouse state
	drag dragState
}

// dragState tracks a pointer press on the card row.
type dragState struct {
	tracker carousel.GestureTracker
	pressX  int
	slot    slot
}

// New creates the model and one controller per showcase.
func New(opts Options) (Model, error) {
	if len(opts.Showcases) == 0 {
		return Model{}, errors.New("ui requires at least one showcase")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	frame := opts.Frame
	if frame <= 0 {
		frame = defaultFrame
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.NewManual(now())
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	m := Model{
		logger:    logger,
		prefsPath: opts.PrefsPath,
		frame:     frame,
		clock:     clk,
		now:       now,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}

	for _, s := range opts.Showcases {
		p, err := newPane(s, clk, logger)
		if err != nil {
			m.dispose()
			return Model{}, err
		}
		m.panes = append(m.panes, p)
		if strings.EqualFold(s.Name, opts.Tab) {
			m.active = len(m.panes) - 1
		}
	}
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.frame)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case frameMsg:
		m.advance(time.Time(msg))
		return m, frameCmd(m.frame)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	p := m.panes[m.active]
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.dispose()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.Tab):
		m.switchPane(1)

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchPane(-1)

	case key.Matches(msg, m.keys.Next):
		m.report(p.ctrl.OnKey(carousel.KeyNext))

	case key.Matches(msg, m.keys.Prev):
		m.report(p.ctrl.OnKey(carousel.KeyPrev))

	case key.Matches(msg, m.keys.Flip):
		m.report(p.ctrl.ToggleFlip())

	case key.Matches(msg, m.keys.Select):
		k := int(msg.String()[0] - '1')
		if k < p.ctrl.Len() {
			m.report(p.ctrl.SelectIndex(k))
		}
	}
	return m, nil
}

// handleMouse turns presses on the card row into clicks and drags.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || (msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease) {
		return m, nil
	}

	p := m.panes[m.active]
	pos := float64(msg.X) * cellPx
	at := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		s, ok := slotAt(layoutSlots(m.width), msg.X, msg.Y)
		if !ok {
			m.drag = dragState{}
			return m, nil
		}
		m.drag = dragState{pressX: msg.X, slot: s}
		m.drag.tracker.Begin(pos, at)

	case tea.MouseActionMotion:
		m.drag.tracker.Move(pos, at)

	case tea.MouseActionRelease:
		if !m.drag.tracker.Active() {
			return m, nil
		}
		travel := msg.X - m.drag.pressX
		if travel < 0 {
			travel = -travel
		}
		if travel < dragCells {
			m.drag.tracker.Reset()
			if index, ok := p.visible()[m.drag.slot.offset]; ok {
				m.report(p.ctrl.Click(index))
			}
			m.drag = dragState{}
			return m, nil
		}
		if sample, ok := m.drag.tracker.End(pos, at); ok {
			m.report(p.ctrl.OnDragEnd(sample))
		}
		m.drag = dragState{}
	}
	return m, nil
}

// advance moves the shared clock to t, firing due unlock and autoplay timers.
func (m Model) advance(t time.Time) {
	if !t.After(m.clock.Now()) {
		return
	}
	m.clock.AdvanceTo(t)
}

func (m *Model) switchPane(delta int) {
	n := len(m.panes)
	m.active = ((m.active+delta)%n + n) % n
	m.drag = dragState{}
	m.savePrefs()
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Tab: m.panes[m.active].name}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// report logs controller errors; the state is re-read on render.
func (m Model) report(_ carousel.State, err error) {
	if err != nil {
		m.logger.Warn("carousel operation failed",
			zap.String("showcase", m.panes[m.active].name),
			zap.Error(err))
	}
}

// dispose stops every controller's timers.
func (m Model) dispose() {
	for _, p := range m.panes {
		_ = p.ctrl.Dispose()
	}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	p := m.panes[m.active]

	var b strings.Builder
	b.WriteString(m.renderHeader(styles))
	b.WriteString("\n\n")
	b.WriteString(p.renderCards(styles, m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, p.renderStatus(styles)))
	b.WriteString("\n\n")
	b.WriteString(styles.Footer.Render(m.help.View(m.keys)))
	return b.String()
}

// renderHeader renders the logo and showcase tabs.
func (m Model) renderHeader(styles Styles) string {
	parts := []string{styles.Logo.Render("carousel")}
	for i, p := range m.panes {
		style := styles.TabInactive
		if i == m.active {
			style = styles.TabActive
		}
		parts = append(parts, style.Render(p.title()))
	}
	left := strings.Join(parts, " ")
	right := styles.MutedText.Render(m.theme.Name)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// Messages

type frameMsg time.Time

// Commands

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled. Every controller is disposed on return.
func Run(ctx context.Context, opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.dispose()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
