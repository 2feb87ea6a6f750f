package play

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/flashquiz/internal/quiz"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/timer"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
	"github.com/abhisek/flashquiz/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	if p.quitConfirm {
		return renderQuitConfirm(width)
	}

	var b strings.Builder
	b.WriteString(p.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch p.sess.Mode() {
	case session.ModePair:
		b.WriteString(p.renderPairs(width))
	default:
		b.WriteString(p.renderQuestion(width))
	}
	return b.String()
}

func (p *PlayScreen) renderInfoLine(width int) string {
	d := p.sess.Deck()
	var progress components.ProgressBar
	if p.sess.Mode() == session.ModePair {
		done := 0
		if pz := p.sess.Puzzle(); pz != nil {
			done = len(pz.Confirmed())
		}
		progress = components.NewProgressBar("Pairs", done, d.Len(), min(40, width/2))
	} else {
		progress = components.NewProgressBar("Card", p.sess.Index(), d.Len(), min(40, width/2))
	}

	left := "  " + progress.View()

	right := ""
	if settings := p.sess.TimerSettings(); settings.Enabled() && p.sess.TimerRunning() {
		label := "Test"
		if settings.Mode == timer.ModePerQuestion {
			label = "Question"
		}
		style := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
		if p.sess.Remaining() <= 5*time.Second {
			style = style.Foreground(theme.Error)
		}
		right = style.Render(fmt.Sprintf("%s %s", label, layout.FormatCountdown(p.sess.Remaining())))
	}

	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (p *PlayScreen) renderQuestion(width int) string {
	card, ok := p.sess.Current()
	if !ok {
		return ""
	}

	var b strings.Builder
	if p.last != nil {
		b.WriteString(renderFeedback(*p.last, width))
		b.WriteString("\n\n")
	}

	cw := components.ContentWidth(width)
	label := fmt.Sprintf("Question %d of %d", p.sess.Index()+1, p.sess.Deck().Len())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.FlashCard(label, card.Question, false, cw)))
	b.WriteString("\n\n")

	if p.sess.Mode() == session.ModeMultipleChoice {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, p.mc.View()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Select (1-4) or use arrows + Enter"))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Answer: " + p.input.View()))
	return b.String()
}

func renderFeedback(rec session.AnswerRecord, width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(true)
	if rec.IsCorrect {
		return style.Foreground(theme.Success).Render("✓ Correct")
	}
	msg := "✗ Not quite. Answer: " + rec.CorrectAnswer
	if rec.UserAnswer == "" {
		msg = "⏱ Time's up. Answer: " + rec.CorrectAnswer
	}
	return style.Foreground(theme.Error).Render(msg)
}

func (p *PlayScreen) renderPairs(width int) string {
	puzzle := p.sess.Puzzle()
	if puzzle == nil {
		return ""
	}

	colWidth := max((width-10)/2, 16)
	selQ, hasQ := puzzle.SelectedQuestion()
	selA, hasA := puzzle.SelectedAnswer()
	mismatch, bad := puzzle.Mismatch()

	render := func(c column, items []quiz.PairItem, selected int, hasSel bool, mismatched int) string {
		var b strings.Builder
		heading := "Questions"
		if c == answerColumn {
			heading = "Answers"
		}
		headStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
		if p.col == c {
			headStyle = headStyle.Foreground(theme.Secondary)
		}
		b.WriteString(headStyle.Render(heading))
		b.WriteString("\n\n")

		for i, item := range items {
			prefix := "  "
			if p.col == c && i == p.cursor[c] {
				prefix = "▸ "
			}
			style := lipgloss.NewStyle().Foreground(theme.Text).Width(colWidth)
			switch {
			case bad && item.Index == mismatched:
				style = style.Foreground(theme.Error).Bold(true)
			case hasSel && item.Index == selected:
				style = style.Foreground(theme.Highlight).Bold(true)
			case p.col == c && i == p.cursor[c]:
				style = style.Foreground(theme.Primary).Bold(true)
			}
			b.WriteString(style.Render(prefix + item.Text))
			b.WriteString("\n")
		}
		return b.String()
	}

	left := render(questionColumn, puzzle.Questions(), selQ, hasQ, mismatch.QuestionIndex)
	right := render(answerColumn, puzzle.Answers(), selA, hasA, mismatch.AnswerIndex)
	board := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, board))
	b.WriteString("\n")

	var status string
	statusStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case bad:
		status = statusStyle.Foreground(theme.Error).Render("Not a pair")
	case p.outcome == quiz.PairMatched:
		status = statusStyle.Foreground(theme.Success).Render("Matched!")
	default:
		status = statusStyle.Foreground(theme.TextDim).Render("Pick a question and its answer")
	}
	b.WriteString(status)

	if confirmed := puzzle.Confirmed(); len(confirmed) > 0 {
		b.WriteString("\n\n")
		d := p.sess.Deck()
		for _, pair := range confirmed {
			card := d.Cards[pair.QuestionIndex]
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Matched.Render(card.Question+" = "+card.Answer)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Quit this quiz?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Unfinished quizzes are not saved to your history."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Error).Render("[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}
