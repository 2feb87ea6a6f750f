// Package summary shows the outcome of a completed quiz.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

// savedMsg reports whether the quiz record reached the history.
type savedMsg struct {
	OK bool
}

// SaveFunc persists the quiz record and reports success.
type SaveFunc func() bool

// Option configures a SummaryScreen.
type Option func(*SummaryScreen)

// WithSave runs save when the screen opens and notes a failure in the view.
func WithSave(save SaveFunc) Option {
	return func(s *SummaryScreen) { s.save = save }
}

type saveState int

const (
	saveNone saveState = iota
	savePending
	saveDone
	saveFailed
)

// SummaryScreen displays a quiz result.
type SummaryScreen struct {
	result  *session.Result
	buttons components.ButtonRow
	offset  int
	save    SaveFunc
	saved   saveState
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a SummaryScreen for result. "Play again" pops back to the
// screen below, which is expected to be the mode picker.
func New(result *session.Result, opts ...Option) *SummaryScreen {
	s := &SummaryScreen{
		result: result,
		buttons: components.NewButtonRow(
			components.NewButton("Play again", false, func() tea.Cmd {
				return func() tea.Msg { return router.PopScreenMsg{} }
			}),
			components.NewButton("Home", false, func() tea.Cmd {
				return func() tea.Msg { return router.PopToRootMsg{} }
			}),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.save == nil {
		return nil
	}
	s.saved = savePending
	save := s.save
	return func() tea.Msg { return savedMsg{OK: save()} }
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) HandlesEscape() bool { return true }

// Result returns the displayed result.
func (s *SummaryScreen) Result() *session.Result { return s.result }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→ Enter", Description: "Choose"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(savedMsg); ok {
		s.saved = saveFailed
		if msg.OK {
			s.saved = saveDone
		}
		return s, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
		return s, nil
	case "down", "j":
		if s.result != nil && s.offset < len(s.result.Answers)-1 {
			s.offset++
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(headline(res)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(res.SetName + " · " + res.Mode.Label()))
	b.WriteString("\n\n")

	cw := components.ContentWidth(width)
	bar := components.NewProgressBar("Score", res.CorrectAnswers, res.TotalQuestions, cw-6)
	if res.Percentage < 50 {
		bar.Fill = lipgloss.NewStyle().Background(theme.Error)
	}
	stats := fmt.Sprintf("%d%%\n\n%s\n\nTotal %s   Average %s",
		res.Percentage, bar.View(),
		layout.FormatDuration(res.TotalTime), layout.FormatDuration(res.AverageTime))
	if res.TimedOut {
		stats += "\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render("Time ran out")
	}
	if s.saved == saveFailed {
		stats += "\n" + theme.Hint.Render("Not saved to history")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(stats, cw)))
	b.WriteString("\n\n")

	// Room for the answer list: header, card, buttons.
	rows := height - 16
	if rows > 0 {
		b.WriteString(s.renderDetails(width, rows))
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.buttons.View()))
	return b.String()
}

func (s *SummaryScreen) renderDetails(width, rows int) string {
	res := s.result
	var lines []string

	if len(res.Answers) > 0 {
		for _, a := range res.Answers[s.offset:] {
			mark := theme.Correct.Render("✓")
			detail := a.Question
			if !a.IsCorrect {
				mark = theme.Incorrect.Render("✗")
				given := a.UserAnswer
				if given == "" {
					given = "(no answer)"
				}
				detail = fmt.Sprintf("%s  %s → %s", a.Question, given, a.CorrectAnswer)
			}
			lines = append(lines, fmt.Sprintf("%s %s  %s", mark, detail,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(layout.FormatDuration(a.ResponseTime))))
		}
	} else if len(res.Pairs) > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d pairs matched", len(res.Pairs))))
	}

	if len(lines) > rows {
		lines = lines[:rows]
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

func headline(res *session.Result) string {
	switch {
	case res.Percentage == 100:
		return "Perfect score!"
	case res.Percentage >= 80:
		return "Great job!"
	case res.Percentage >= 50:
		return "Quiz complete"
	default:
		return "Keep practicing"
	}
}
