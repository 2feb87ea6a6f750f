// Package history shows past quiz records and profile statistics.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/results"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/stats"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Records []results.Record
}

// HistoryScreen lists records newest first with a statistics card.
type HistoryScreen struct {
	store    screen.ResultStore
	records  []results.Record // newest first
	summary  stats.Summary
	selected int
	expanded map[int]bool
	loaded   bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen reading from store. A nil store shows an
// empty history.
func New(store screen.ResultStore) *HistoryScreen {
	return &HistoryScreen{
		store:    store,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		if st == nil {
			return historyLoadedMsg{}
		}
		return historyLoadedMsg{Records: st.LoadAll(context.Background())}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.summary = stats.Compute(msg.Records)
		s.records = slices.Clone(msg.Records)
		slices.Reverse(s.records)
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Pick a set and play!")
	}

	var b strings.Builder
	b.WriteString("\n")
	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(renderStats(s.summary), cw)))
	b.WriteString("\n\n")

	rows := max(height-10, 3)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	for i := start; i < len(s.records) && i < start+rows; i++ {
		rec := s.records[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-24s %-16s %3d%%  %d/%d",
			prefix, rec.CompletedAt.Local().Format("Jan 02 15:04"),
			truncate(rec.SetName, 24), modeLabel(rec.Mode),
			rec.Percentage(), rec.CorrectAnswers, rec.TotalQuestions)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    took %s · timer %s", layout.FormatDuration(rec.Duration()), rec.Settings.Mode)
			if rec.Settings.Enabled() {
				detail += " " + layout.FormatCountdown(rec.Settings.Duration)
			}
			if rec.Subject != "" {
				detail += " · " + rec.Subject
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderStats(sum stats.Summary) string {
	accent := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		accent.Render(fmt.Sprint(sum.Quizzes)), dim.Render("quizzes"),
		accent.Render(fmt.Sprintf("%d%%", sum.AveragePercent)), dim.Render("average"),
		accent.Render(fmt.Sprintf("%d%%", sum.BestPercent)), dim.Render("best"),
		accent.Render(layout.FormatDuration(sum.TotalTime)), dim.Render("played"))

	var modes []string
	for _, m := range sum.Modes {
		modes = append(modes, fmt.Sprintf("%s ×%d (%d%%)", modeLabel(m.Mode), m.Quizzes, m.AveragePercent))
	}
	if len(modes) > 0 {
		line += "\n" + dim.Render(strings.Join(modes, " · "))
	}
	return line
}

func modeLabel(name string) string {
	if m, err := session.ParseMode(name); err == nil {
		return m.Label()
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
