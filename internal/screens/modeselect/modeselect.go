// Package modeselect lets the user pick a quiz mode and timer for a loaded
// deck, then starts the session.
package modeselect

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/play"
	"github.com/abhisek/flashquiz/internal/screens/review"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/timer"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const (
	defaultSeconds = 30
	secondsStep    = 5
	maxSeconds     = 86400
)

var modeHints = map[session.Mode]string{
	session.ModeMultipleChoice: "pick from four answers",
	session.ModeTypeAnswer:     "type each answer",
	session.ModePair:           "match questions to answers",
	session.ModeReview:         "flip through cards, not scored",
}

// ModeSelectScreen is the mode-selection phase of a session.
type ModeSelectScreen struct {
	deck     *deck.Deck
	deps     *screen.Deps
	menu     components.Menu
	settings timer.Settings
	seconds  components.TextInput
	editing  bool
	starts   int
	errMsg   string
	rng      *rand.Rand
}

var _ screen.Screen = (*ModeSelectScreen)(nil)
var _ screen.KeyHintProvider = (*ModeSelectScreen)(nil)
var _ screen.EscapeHandler = (*ModeSelectScreen)(nil)

// New creates a mode picker for d. The timer starts from deps.Timer.
func New(d *deck.Deck, deps *screen.Deps) *ModeSelectScreen {
	m := &ModeSelectScreen{
		deck:     d,
		deps:     deps,
		settings: timer.Settings{Mode: timer.ModeOff, Duration: defaultSeconds * time.Second},
		seconds:  components.NewTextInput("seconds", true, 5),
	}
	if deps != nil && deps.Timer.Validate() == nil {
		m.settings = deps.Timer
	}
	if m.settings.Duration <= 0 {
		m.settings.Duration = defaultSeconds * time.Second
	}

	items := make([]components.MenuItem, 0, len(session.Modes))
	for _, mode := range session.Modes {
		items = append(items, components.MenuItem{
			Label:  mode.Label(),
			Hint:   modeHints[mode],
			Action: func() tea.Cmd { return m.start(mode) },
		})
	}
	m.menu = components.NewMenu(items)
	return m
}

func (m *ModeSelectScreen) Init() tea.Cmd { return nil }

func (m *ModeSelectScreen) Title() string { return m.deck.SetName }

// HandlesEscape claims Esc only while the seconds field is open.
func (m *ModeSelectScreen) HandlesEscape() bool { return m.editing }

// Settings returns the timer settings the next session will use.
func (m *ModeSelectScreen) Settings() timer.Settings { return m.settings }

func (m *ModeSelectScreen) KeyHints() []layout.KeyHint {
	if m.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Set seconds"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓ Enter", Description: "Start"},
		{Key: "T", Description: "Timer"},
		{Key: "+/-", Description: "Seconds"},
		{Key: "S", Description: "Set seconds"},
		{Key: "Esc", Description: "Back"},
	}
}

func (m *ModeSelectScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m.editing {
		return m.updateSeconds(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "t", "T":
		m.settings.Mode = (m.settings.Mode + 1) % 3
		return m, nil
	case "+", "=":
		m.settings.Duration = min(m.settings.Duration+secondsStep*time.Second, maxSeconds*time.Second)
		return m, nil
	case "-", "_":
		m.settings.Duration = max(m.settings.Duration-secondsStep*time.Second, secondsStep*time.Second)
		return m, nil
	case "s", "S":
		m.editing = true
		m.seconds.SetValue(fmt.Sprint(int(m.settings.Duration / time.Second)))
		return m, m.seconds.Init()
	}

	m.errMsg = ""
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *ModeSelectScreen) updateSeconds(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			m.editing = false
			return m, nil
		case "enter":
			n, err := m.seconds.NumericValue()
			if err != nil || n <= 0 || n > maxSeconds {
				m.errMsg = fmt.Sprintf("Enter between 1 and %d seconds", maxSeconds)
				return m, nil
			}
			m.settings.Duration = time.Duration(n) * time.Second
			m.editing = false
			m.errMsg = ""
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.seconds, cmd = m.seconds.Update(msg)
	return m, cmd
}

// start creates and starts a session. Every start after the first
// reshuffles the deck.
func (m *ModeSelectScreen) start(mode session.Mode) tea.Cmd {
	d := m.deck
	if m.starts > 0 {
		d = &deck.Deck{
			SetID:   m.deck.SetID,
			SetName: m.deck.SetName,
			Subject: m.deck.Subject,
			Cards:   deck.Shuffle(m.deck.Cards, m.rng),
		}
	}

	var opts []session.Option
	if m.rng != nil {
		opts = append(opts, session.WithRand(m.rng))
	}
	s := session.New(opts...)
	if err := s.Configure(m.settings); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	if err := s.Start(mode, d); err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.starts++
	m.deps.Log().Info("session started",
		"session", s.ID(), "set", d.SetID, "mode", mode.String(), "timer", m.settings.Mode.String())

	var next screen.Screen
	if mode == session.ModeReview {
		next = review.New(s)
	} else {
		next = play.New(s, m.deps)
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (m *ModeSelectScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(m.deck.SetName))
	b.WriteString("\n")
	info := fmt.Sprintf("%d cards", m.deck.Len())
	if m.deck.Subject != "" {
		info = m.deck.Subject + " · " + info
	}
	b.WriteString(center.Foreground(theme.TextDim).Render(info))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, m.menu.View()))
	b.WriteString("\n")

	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(m.timerLine(), cw)))
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render(m.errMsg))
	}
	return b.String()
}

func (m *ModeSelectScreen) timerLine() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Timer  ")
	if m.editing {
		return label + "seconds: " + m.seconds.View()
	}
	value := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	switch m.settings.Mode {
	case timer.ModePerQuestion:
		return label + value.Render(fmt.Sprintf("%s per question", layout.FormatCountdown(m.settings.Duration)))
	case timer.ModeWholeTest:
		return label + value.Render(fmt.Sprintf("%s for the whole quiz", layout.FormatCountdown(m.settings.Duration)))
	}
	return label + value.Render("off")
}
