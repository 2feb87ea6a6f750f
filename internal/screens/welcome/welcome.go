package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// Two stacked cards; the front one flips between question and answer.
const cardFront = `╭─────────────╮
│  ?          │
│             │
│    Q · A    │
│             │
╰─────────────╯`

const cardBack = `╭─────────────╮
│          !  │
│             │
│    A · Q    │
│             │
╰─────────────╯`

type tickMsg time.Time

// WelcomeScreen shows a short splash, then replaces itself with the screen
// produced by next. Any key skips ahead.
type WelcomeScreen struct {
	next         func() screen.Screen
	status       string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. status is shown under the tagline, e.g. the
// signed-in user.
func New(next func() screen.Screen, status string) *WelcomeScreen {
	return &WelcomeScreen{
		next:   next,
		status: status,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= totalDur {
			w.elapsed = totalDur
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	card := cardFront
	if w.elapsed >= phase1End && (w.tickCount/4)%2 == 1 {
		card = cardBack
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Highlight).Render(card))

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Flashcards in your terminal"))
		if w.status != "" {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Render(w.status))
		}
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
