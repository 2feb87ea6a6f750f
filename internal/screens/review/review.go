// Package review flips through a deck without scoring.
package review

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

// ReviewScreen shows one card at a time, question side first.
type ReviewScreen struct {
	sess    *session.Session
	flipped bool
	seen    map[int]bool
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.Closer = (*ReviewScreen)(nil)

// New creates a ReviewScreen over a session started in review mode.
func New(sess *session.Session) *ReviewScreen {
	return &ReviewScreen{sess: sess, seen: map[int]bool{}}
}

func (r *ReviewScreen) Init() tea.Cmd { return nil }

func (r *ReviewScreen) Title() string {
	return r.sess.Deck().SetName + " · Review"
}

func (r *ReviewScreen) Close() { r.sess.Close() }

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Move"},
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || r.sess.Phase() != session.PhaseActive {
		return r, nil
	}

	switch kmsg.String() {
	case "space", " ", "up", "down", "k", "j":
		r.flipped = !r.flipped
		if r.flipped {
			r.seen[r.sess.Index()] = true
		}
	case "right", "l", "n":
		if r.sess.Next() {
			r.flipped = false
		}
	case "left", "h", "p":
		if r.sess.Prev() {
			r.flipped = false
		}
	case "enter":
		if err := r.sess.Finish(); err != nil {
			return r, nil
		}
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return r, nil
}

func (r *ReviewScreen) View(width, height int) string {
	card, ok := r.sess.Current()
	if !ok {
		return ""
	}
	total := r.sess.Deck().Len()

	var b strings.Builder
	b.WriteString("\n")
	bar := components.NewProgressBar("Seen", len(r.seen), total, min(40, width/2))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	label := fmt.Sprintf("Card %d of %d · Question", r.sess.Index()+1, total)
	body := card.Question
	if r.flipped {
		label = fmt.Sprintf("Card %d of %d · Answer", r.sess.Index()+1, total)
		body = card.Answer
	}
	cw := components.ContentWidth(width)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.FlashCard(label, body, r.flipped, cw)))
	b.WriteString("\n\n")

	hint := "Space to reveal the answer"
	if r.flipped {
		hint = "Space to show the question"
	}
	if r.sess.Index() == total-1 {
		hint += " · last card, Enter to finish"
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.TextDim).Render(hint))
	return b.String()
}
