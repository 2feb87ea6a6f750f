// Package setpicker lists available flashcard sets and loads the chosen one.
package setpicker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/decksource"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/modeselect"
	"github.com/abhisek/flashquiz/internal/setapi"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

const visibleRows = 12

type setsLoadedMsg struct {
	Sets []deck.SetSummary
	Err  error
}

type deckLoadedMsg struct {
	SetID string
	Deck  *deck.Deck
	Err   error
}

// SetPickerScreen shows the set catalog with a filter box.
type SetPickerScreen struct {
	deps      *screen.Deps
	filter    components.TextInput
	sets      []deck.SetSummary
	visible   []deck.SetSummary
	selected  int
	listed    bool
	listErr   string
	loadingID string
	errMsg    string
	initialID string
}

var _ screen.Screen = (*SetPickerScreen)(nil)
var _ screen.KeyHintProvider = (*SetPickerScreen)(nil)

// New creates a set picker. A non-empty initialID is loaded immediately.
func New(deps *screen.Deps, initialID string) *SetPickerScreen {
	return &SetPickerScreen{
		deps:      deps,
		filter:    components.NewTextInput("Filter sets or type a set ID...", false, 80),
		initialID: initialID,
	}
}

func (s *SetPickerScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.filter.Init(), s.listSets()}
	if s.initialID != "" {
		cmds = append(cmds, s.load(s.initialID))
	}
	return tea.Batch(cmds...)
}

func (s *SetPickerScreen) Title() string { return "Choose a set" }

func (s *SetPickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Type", Description: "Filter"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Load"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SetPickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case setsLoadedMsg:
		s.listed = true
		s.sets = msg.Sets
		if msg.Err != nil {
			s.deps.Log().Warn("listing sets", "err", msg.Err)
			if len(msg.Sets) == 0 {
				s.listErr = msg.Err.Error()
			}
		}
		s.applyFilter()
		return s, nil

	case deckLoadedMsg:
		if msg.SetID != s.loadingID {
			return s, nil
		}
		s.loadingID = ""
		if msg.Err != nil {
			s.deps.Log().Error("loading set", "set", msg.SetID, "err", msg.Err)
			s.errMsg = describeLoadError(msg.SetID, msg.Err)
			return s, nil
		}
		next := modeselect.New(msg.Deck, s.deps)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if s.loadingID != "" {
			return s, nil
		}
		switch msg.String() {
		case "up":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down":
			if s.selected < len(s.visible)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if len(s.visible) > 0 {
				return s, s.load(s.visible[s.selected].ID)
			}
			if id := strings.TrimSpace(s.filter.Value()); id != "" {
				return s, s.load(id)
			}
			return s, nil
		}
		s.errMsg = ""
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.applyFilter()
		return s, cmd
	}

	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	return s, cmd
}

func (s *SetPickerScreen) listSets() tea.Cmd {
	if s.deps == nil || s.deps.Sets == nil {
		s.listed = true
		return nil
	}
	lister := s.deps.Sets
	return func() tea.Msg {
		sets, err := lister.ListSets(context.Background())
		return setsLoadedMsg{Sets: sets, Err: err}
	}
}

func (s *SetPickerScreen) load(setID string) tea.Cmd {
	if s.deps == nil || s.deps.Decks == nil {
		s.errMsg = "No deck source is configured."
		return nil
	}
	s.loadingID = setID
	s.errMsg = ""
	loader := s.deps.Decks
	return func() tea.Msg {
		d, err := loader.Load(context.Background(), setID)
		return deckLoadedMsg{SetID: setID, Deck: d, Err: err}
	}
}

func (s *SetPickerScreen) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(s.filter.Value()))
	s.visible = s.visible[:0]
	for _, set := range s.sets {
		if q == "" ||
			strings.Contains(strings.ToLower(set.Name), q) ||
			strings.Contains(strings.ToLower(set.Subject), q) ||
			strings.Contains(strings.ToLower(set.ID), q) {
			s.visible = append(s.visible, set)
		}
	}
	if s.selected >= len(s.visible) {
		s.selected = max(len(s.visible)-1, 0)
	}
}

func describeLoadError(setID string, err error) string {
	switch {
	case errors.Is(err, setapi.ErrUnauthorized):
		return "Not signed in or session expired. Run `flashquiz login` and try again."
	case errors.Is(err, setapi.ErrNotFound), errors.Is(err, decksource.ErrNotFound):
		return fmt.Sprintf("Set %q was not found.", setID)
	case errors.Is(err, deck.ErrEmptySet):
		return fmt.Sprintf("Set %q has no cards yet.", setID)
	}
	return fmt.Sprintf("Could not load %q: %v", setID, err)
}

func (s *SetPickerScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(s.filter.View())))
	b.WriteString("\n\n")

	switch {
	case s.loadingID != "":
		b.WriteString(center.Foreground(theme.TextDim).Render(fmt.Sprintf("Loading %s...", s.loadingID)))
		return b.String()
	case !s.listed:
		b.WriteString(center.Foreground(theme.TextDim).Render("Looking for sets..."))
	case s.listErr != "":
		b.WriteString(center.Foreground(theme.Error).Render("Could not list sets: " + s.listErr))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Type a set ID and press Enter."))
	case len(s.visible) == 0 && len(s.sets) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No sets found. Type a set ID and press Enter."))
	case len(s.visible) == 0:
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("No matching sets. Enter loads the typed ID."))
	default:
		b.WriteString(s.renderList(width, cw))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
	}
	return b.String()
}

func (s *SetPickerScreen) renderList(width, cw int) string {
	start := 0
	if s.selected >= visibleRows {
		start = s.selected - visibleRows + 1
	}
	end := min(start+visibleRows, len(s.visible))

	var lines []string
	for i := start; i < end; i++ {
		set := s.visible[i]
		meta := fmt.Sprintf("%d cards", set.CardCount)
		if set.Subject != "" {
			meta = set.Subject + " · " + meta
		}
		if set.Source != "" {
			meta += " · " + set.Source
		}
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		name := style.Render(prefix + set.Name)
		gap := max(cw-lipgloss.Width(name)-lipgloss.Width(meta), 2)
		lines = append(lines, name+strings.Repeat(" ", gap)+
			theme.Hint.Render(meta))
	}
	if len(s.visible) > visibleRows {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d of %d", s.selected+1, len(s.visible))))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}
