// Package play is the quiz screen for multiple-choice, type-answer and pair
// modes.
package play

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/flashquiz/internal/quiz"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/screen"
	"github.com/abhisek/flashquiz/internal/screens/summary"
	"github.com/abhisek/flashquiz/internal/session"
	"github.com/abhisek/flashquiz/internal/timer"
	"github.com/abhisek/flashquiz/internal/ui/components"
	"github.com/abhisek/flashquiz/internal/ui/layout"
)

const (
	tickInterval  = time.Second
	mismatchDelay = time.Second
)

// column identifies one side of the pair board.
type column int

const (
	questionColumn column = iota
	answerColumn
)

// PlayScreen drives an active session.
type PlayScreen struct {
	sess *session.Session
	deps *screen.Deps

	mc    components.MultiChoice
	input components.TextInput

	col     column
	cursor  [2]int
	outcome quiz.PairOutcome
	seq     int

	last        *session.AnswerRecord
	quitConfirm bool
	finished    bool
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.Closer = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a PlayScreen over a session that has already been started.
func New(sess *session.Session, deps *screen.Deps) *PlayScreen {
	p := &PlayScreen{
		sess:  sess,
		deps:  deps,
		input: components.NewTextInput("Type your answer...", false, 120),
	}
	p.resetInputs()
	return p
}

func (p *PlayScreen) Init() tea.Cmd {
	if p.sess.Phase() == session.PhaseCompleted {
		return p.finish()
	}
	cmds := []tea.Cmd{p.scheduleTick()}
	if p.sess.Mode() == session.ModeTypeAnswer {
		cmds = append(cmds, p.input.Init())
	}
	return tea.Batch(cmds...)
}

func (p *PlayScreen) Title() string {
	return p.sess.Deck().SetName + " · " + p.sess.Mode().Label()
}

func (p *PlayScreen) HandlesEscape() bool { return true }

// Close stops the session. An unfinished session is abandoned.
func (p *PlayScreen) Close() {
	p.sess.Close()
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch p.sess.Mode() {
	case session.ModeMultipleChoice:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case session.ModePair:
		return []layout.KeyHint{
			{Key: "←→", Description: "Column"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Pick"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return p.handleTick(msg)

	case mismatchClearMsg:
		if msg.Seq == p.seq {
			p.sess.ClearPairMismatch()
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.sess.Mode() == session.ModeTypeAnswer && !p.quitConfirm {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlayScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.Generation != p.sess.TimerGeneration() {
		// A stale chain; the live one reschedules itself.
		return p, nil
	}
	before := p.sess.Index()
	ev := p.sess.Tick(msg.Generation, tickInterval)
	if p.sess.Phase() == session.PhaseCompleted {
		return p, p.finish()
	}
	if ev == timer.EventQuestionExpired && p.sess.Index() != before {
		p.recordLast()
		p.resetInputs()
	}
	return p, p.scheduleTick()
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.sess.Phase() != session.PhaseActive {
		return p, nil
	}

	if p.quitConfirm {
		switch key {
		case "y", "Y":
			p.quitConfirm = false
			p.sess.Close()
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			p.quitConfirm = false
		}
		return p, nil
	}

	if key == "esc" {
		p.quitConfirm = true
		return p, nil
	}

	switch p.sess.Mode() {
	case session.ModeMultipleChoice:
		var cmd tea.Cmd
		p.mc, cmd = p.mc.Update(msg)
		if chosen, ok := p.mc.Chosen(); ok {
			return p, tea.Batch(cmd, p.submit(chosen))
		}
		return p, cmd

	case session.ModeTypeAnswer:
		if key == "enter" {
			if p.input.Value() == "" {
				return p, nil
			}
			return p, p.submit(p.input.Value())
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd

	case session.ModePair:
		return p, p.handlePairKey(key)
	}
	return p, nil
}

func (p *PlayScreen) handlePairKey(key string) tea.Cmd {
	puzzle := p.sess.Puzzle()
	items := p.columnItems(puzzle, p.col)

	switch key {
	case "left", "h":
		p.col = questionColumn
	case "right", "l":
		p.col = answerColumn
	case "tab":
		p.col = 1 - p.col
	case "up", "k":
		if p.cursor[p.col] > 0 {
			p.cursor[p.col]--
		}
	case "down", "j":
		if p.cursor[p.col] < len(items)-1 {
			p.cursor[p.col]++
		}
	case "enter", "space", " ":
		if len(items) == 0 {
			return nil
		}
		item := items[p.cursor[p.col]]
		var outcome quiz.PairOutcome
		var err error
		if p.col == questionColumn {
			outcome, err = p.sess.SelectPairQuestion(item.Index)
		} else {
			outcome, err = p.sess.SelectPairAnswer(item.Index)
		}
		if err != nil {
			p.deps.Log().Warn("pair selection rejected", "err", err)
			return nil
		}
		return p.afterPairTap(outcome)
	}
	return nil
}

func (p *PlayScreen) afterPairTap(outcome quiz.PairOutcome) tea.Cmd {
	p.outcome = outcome
	switch outcome {
	case quiz.PairMatched:
		if p.sess.Phase() == session.PhaseCompleted {
			return p.finish()
		}
		p.clampCursors()
	case quiz.PairPending:
		// Move to the other column so the next tap completes the pair.
		if _, ok := p.sess.Puzzle().SelectedQuestion(); ok && p.col == questionColumn {
			if _, ok := p.sess.Puzzle().SelectedAnswer(); !ok {
				p.col = answerColumn
			}
		}
	case quiz.PairMismatched:
		p.seq++
		seq := p.seq
		return tea.Tick(mismatchDelay, func(time.Time) tea.Msg {
			return mismatchClearMsg{Seq: seq}
		})
	}
	return nil
}

func (p *PlayScreen) submit(answer string) tea.Cmd {
	gen := p.sess.TimerGeneration()
	if _, err := p.sess.Submit(answer); err != nil {
		p.deps.Log().Warn("submit rejected", "err", err)
		return nil
	}
	p.recordLast()
	if p.sess.Phase() == session.PhaseCompleted {
		return p.finish()
	}
	p.resetInputs()
	if p.sess.TimerGeneration() != gen {
		// The per-question countdown restarted; the old chain is now stale.
		return p.scheduleTick()
	}
	return nil
}

// finish replaces this screen with the results, which persist the record.
func (p *PlayScreen) finish() tea.Cmd {
	if p.finished {
		return nil
	}
	p.finished = true

	var opts []summary.Option
	if rec, ok := p.sess.TakeRecord(); ok && p.deps != nil && p.deps.Results != nil {
		store := p.deps.Results
		opts = append(opts, summary.WithSave(func() bool {
			return store.Append(context.Background(), rec)
		}))
	}

	res := p.sess.Result()
	if res == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	next := summary.New(res, opts...)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (p *PlayScreen) scheduleTick() tea.Cmd {
	if !p.sess.TimerRunning() {
		return nil
	}
	gen := p.sess.TimerGeneration()
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{Generation: gen}
	})
}

func (p *PlayScreen) recordLast() {
	answers := p.sess.Answers()
	if len(answers) == 0 {
		return
	}
	last := answers[len(answers)-1]
	p.last = &last
}

func (p *PlayScreen) resetInputs() {
	p.mc = components.NewMultiChoice(p.sess.Choices())
	p.input.Reset()
}

func (p *PlayScreen) columnItems(puzzle *quiz.PairPuzzle, c column) []quiz.PairItem {
	if puzzle == nil {
		return nil
	}
	if c == questionColumn {
		return puzzle.Questions()
	}
	return puzzle.Answers()
}

func (p *PlayScreen) clampCursors() {
	puzzle := p.sess.Puzzle()
	for _, c := range []column{questionColumn, answerColumn} {
		n := len(p.columnItems(puzzle, c))
		if p.cursor[c] >= n {
			p.cursor[c] = max(n-1, 0)
		}
	}
}
