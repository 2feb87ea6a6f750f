package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/history"
	"github.com/abhisek/flashquiz/internal/screens/setpicker"
	"github.com/abhisek/flashquiz/internal/stats"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

type statsLoadedMsg struct {
	Summary stats.Summary
}

// HomeScreen is the root screen: a title, the profile stats bar and the
// main menu.
type HomeScreen struct {
	deps       *screen.Deps
	menu       components.Menu
	menuLabels []string
	summary    stats.Summary
	loaded     bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps *screen.Deps) *HomeScreen {
	menuLabels := []string{"PLAY", "HISTORY", "QUIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setpicker.New(deps, "")}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			var store screen.ResultStore
			if deps != nil {
				store = deps.Results
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(store)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps:       deps,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads stats after a quiz or history visit.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.deps == nil || h.deps.Results == nil {
		return nil
	}
	store := h.deps.Results
	return func() tea.Msg {
		return statsLoadedMsg{Summary: stats.Compute(store.LoadAll(context.Background()))}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.summary = msg.Summary
		h.loaded = true
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.summary, h.loaded, cw, compact),
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
