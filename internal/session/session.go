package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/quiz"
	"github.com/abhisek/flashquiz/internal/results"
	"github.com/abhisek/flashquiz/internal/timer"
)

var (
	// ErrSessionStarted is returned when settings or mode change after Start.
	ErrSessionStarted = errors.New("session already started")

	// ErrNotActive is returned for play actions outside the active phase.
	ErrNotActive = errors.New("session is not active")

	// ErrWrongMode is returned for an action the current mode does not accept.
	ErrWrongMode = errors.New("action not available in this mode")
)

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used for response times and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRand sets the random source for choices and pair shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// Session runs one quiz over one deck. It is not safe for concurrent use;
// the UI event loop owns it.
type Session struct {
	id    string
	phase Phase
	mode  Mode
	deck  *deck.Deck
	timer *timer.Controller

	index   int
	answers []AnswerRecord
	choices []string
	puzzle  *quiz.PairPuzzle

	startedAt         time.Time
	questionStartedAt time.Time
	completedAt       time.Time
	timedOut          bool
	abandoned         bool

	record      *results.Record
	recordTaken bool

	now func() time.Time
	rng *rand.Rand
}

// New creates a session in the mode-selection phase with the timer off.
func New(opts ...Option) *Session {
	s := &Session{
		phase: PhaseModeSelection,
		timer: timer.New(timer.Settings{Mode: timer.ModeOff}),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure sets the timer. Only allowed before Start.
func (s *Session) Configure(settings timer.Settings) error {
	if s.phase != PhaseModeSelection {
		return ErrSessionStarted
	}
	return s.timer.Configure(settings)
}

// Start begins play in mode over d.
func (s *Session) Start(mode Mode, d *deck.Deck) error {
	if s.phase != PhaseModeSelection {
		return ErrSessionStarted
	}
	if !mode.Valid() {
		return fmt.Errorf("start session: unknown mode %d", int(mode))
	}
	if d == nil || d.Len() == 0 {
		return deck.ErrEmptySet
	}

	s.id = uuid.NewString()
	s.mode = mode
	s.deck = d
	s.index = 0
	s.answers = make([]AnswerRecord, 0, d.Len())
	s.startedAt = s.now()
	s.questionStartedAt = s.startedAt
	s.phase = PhaseActive

	switch mode {
	case ModeMultipleChoice:
		s.choices = quiz.BuildChoices(d.Cards, 0, s.rng)
	case ModePair:
		s.puzzle = quiz.NewPairPuzzle(d.Cards, s.rng)
	}

	if mode.Timed() {
		s.timer.Start()
	}
	return nil
}

// Submit answers the current card in multiple-choice or type-answer mode
// and advances to the next card, completing the session after the last one.
func (s *Session) Submit(answer string) (AnswerRecord, error) {
	if s.phase != PhaseActive {
		return AnswerRecord{}, ErrNotActive
	}
	if !s.mode.Answered() {
		return AnswerRecord{}, ErrWrongMode
	}
	return s.submit(answer), nil
}

func (s *Session) submit(answer string) AnswerRecord {
	card := s.deck.Cards[s.index]
	now := s.now()
	rec := AnswerRecord{
		QuestionIndex: s.index,
		Question:      card.Question,
		CorrectAnswer: card.Answer,
		UserAnswer:    answer,
		IsCorrect:     quiz.CheckAnswer(answer, card.Answer),
		ResponseTime:  now.Sub(s.questionStartedAt),
	}
	s.answers = append(s.answers, rec)

	s.index++
	if s.index >= s.deck.Len() {
		s.complete()
		return rec
	}

	s.questionStartedAt = now
	if s.mode == ModeMultipleChoice {
		s.choices = quiz.BuildChoices(s.deck.Cards, s.index, s.rng)
	}
	s.timer.ResetQuestion()
	return rec
}

// SelectPairQuestion taps a question tile in pair mode.
func (s *Session) SelectPairQuestion(index int) (quiz.PairOutcome, error) {
	if err := s.pairGuard(); err != nil {
		return quiz.PairIgnored, err
	}
	return s.afterPairTap(s.puzzle.SelectQuestion(index)), nil
}

// SelectPairAnswer taps an answer tile in pair mode.
func (s *Session) SelectPairAnswer(index int) (quiz.PairOutcome, error) {
	if err := s.pairGuard(); err != nil {
		return quiz.PairIgnored, err
	}
	return s.afterPairTap(s.puzzle.SelectAnswer(index)), nil
}

// ClearPairMismatch ends the mismatch highlight and clears both selections.
func (s *Session) ClearPairMismatch() {
	if s.phase == PhaseActive && s.puzzle != nil {
		s.puzzle.ClearMismatch()
	}
}

func (s *Session) pairGuard() error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if s.mode != ModePair {
		return ErrWrongMode
	}
	return nil
}

func (s *Session) afterPairTap(outcome quiz.PairOutcome) quiz.PairOutcome {
	if outcome == quiz.PairMatched && s.puzzle.Complete() {
		s.complete()
	}
	return outcome
}

// Tick forwards a timer tick. A per-question expiry submits an empty answer
// (or ends the puzzle in pair mode); a whole-test expiry completes the
// session with the answers given so far. Ticks after completion are ignored.
func (s *Session) Tick(generation int, elapsed time.Duration) timer.Event {
	if s.phase != PhaseActive {
		return timer.EventNone
	}

	ev := s.timer.Tick(generation, elapsed)
	switch ev {
	case timer.EventQuestionExpired:
		if s.mode.Answered() {
			s.submit("")
		} else {
			s.timedOut = true
			s.complete()
		}
	case timer.EventTestExpired:
		s.timedOut = true
		s.complete()
	}
	return ev
}

// Next moves forward one card in review mode.
func (s *Session) Next() bool {
	if s.phase != PhaseActive || s.mode != ModeReview || s.index >= s.deck.Len()-1 {
		return false
	}
	s.index++
	return true
}

// Prev moves back one card in review mode.
func (s *Session) Prev() bool {
	if s.phase != PhaseActive || s.mode != ModeReview || s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Finish ends a review session. Review sessions produce no record.
func (s *Session) Finish() error {
	if s.phase != PhaseActive {
		return ErrNotActive
	}
	if s.mode != ModeReview {
		return ErrWrongMode
	}
	s.complete()
	return nil
}

// Close tears the session down. The timer stops so ticks already scheduled
// do nothing. Closing an active session abandons it without a record.
func (s *Session) Close() {
	s.timer.Stop()
	if s.phase == PhaseActive {
		s.abandoned = true
		s.phase = PhaseCompleted
		s.completedAt = s.now()
	}
}

func (s *Session) complete() {
	if s.phase == PhaseCompleted {
		return
	}
	s.phase = PhaseCompleted
	s.timer.Stop()
	s.completedAt = s.now()

	if s.mode.Scored() {
		rec := s.buildRecord()
		s.record = &rec
	}
}

func (s *Session) buildRecord() results.Record {
	correct := s.correctCount()
	id, err := gonanoid.New()
	if err != nil {
		id = s.id
	}
	return results.Record{
		ID:             id,
		SetName:        s.deck.SetName,
		SetID:          s.deck.SetID,
		Subject:        s.deck.Subject,
		Mode:           s.mode.String(),
		Score:          correct,
		CorrectAnswers: correct,
		TotalQuestions: s.deck.Len(),
		CompletedAt:    s.completedAt,
		TimeTaken:      int64(s.elapsed().Round(time.Second) / time.Second),
		Settings:       s.timer.Settings(),
	}
}

// correctCount is the number of correct answers, or confirmed pairs in pair
// mode. Mismatched taps are not counted against the player, so a finished
// puzzle always scores every pair.
func (s *Session) correctCount() int {
	if s.mode == ModePair {
		return len(s.puzzle.Confirmed())
	}
	n := 0
	for _, a := range s.answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

func (s *Session) elapsed() time.Duration {
	end := s.completedAt
	if s.phase != PhaseCompleted {
		end = s.now()
	}
	return end.Sub(s.startedAt)
}

// TakeRecord returns the quiz record of a completed scored session. It
// returns the record only once, so a session is saved at most one time.
func (s *Session) TakeRecord() (results.Record, bool) {
	if s.record == nil || s.recordTaken {
		return results.Record{}, false
	}
	s.recordTaken = true
	return *s.record, true
}

// ID returns the session identifier, empty before Start.
func (s *Session) ID() string { return s.id }

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Mode returns the mode chosen at Start.
func (s *Session) Mode() Mode { return s.mode }

// Deck returns the deck being played.
func (s *Session) Deck() *deck.Deck { return s.deck }

// Index is the position of the current card.
func (s *Session) Index() int { return s.index }

// Current returns the card being shown.
func (s *Session) Current() (deck.Card, bool) {
	if s.deck == nil || s.phase != PhaseActive {
		return deck.Card{}, false
	}
	return s.deck.Card(s.index)
}

// Choices returns the options for the current multiple-choice card.
func (s *Session) Choices() []string { return slices.Clone(s.choices) }

// Puzzle returns the pairing puzzle, nil outside pair mode.
func (s *Session) Puzzle() *quiz.PairPuzzle { return s.puzzle }

// Answers returns the answers given so far, in question order.
func (s *Session) Answers() []AnswerRecord { return slices.Clone(s.answers) }

// TimerSettings returns the configured timer.
func (s *Session) TimerSettings() timer.Settings { return s.timer.Settings() }

// TimerRunning reports whether another tick should be scheduled.
func (s *Session) TimerRunning() bool { return s.timer.Running() }

// TimerGeneration tags ticks so stale ones are ignored.
func (s *Session) TimerGeneration() int { return s.timer.Generation() }

// Remaining returns the time left on the countdown.
func (s *Session) Remaining() time.Duration { return s.timer.Remaining() }

// TimedOut reports whether the timer ended the session.
func (s *Session) TimedOut() bool { return s.timedOut }

// Abandoned reports whether the session was closed before completion.
func (s *Session) Abandoned() bool { return s.abandoned }
