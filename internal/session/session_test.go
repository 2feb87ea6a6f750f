package session

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/quiz"
	"github.com/abhisek/flashquiz/internal/timer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func arithmeticDeck() *deck.Deck {
	return &deck.Deck{
		SetID:   "set-42",
		SetName: "Arithmetic",
		Subject: "Math",
		Cards: []deck.Card{
			{ID: "c1", Question: "2+2?", Answer: "4"},
			{ID: "c2", Question: "3+3?", Answer: "6"},
		},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := New(WithClock(clock.now), WithRand(rand.New(rand.NewPCG(1, 2))))
	return s, clock
}

func TestMultipleChoice_HalfCorrect(t *testing.T) {
	s, clock := newTestSession(t)
	require.NoError(t, s.Start(ModeMultipleChoice, arithmeticDeck()))
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Contains(t, s.Choices(), "4")
	assert.Len(t, s.Choices(), quiz.ChoiceCount)

	clock.advance(3 * time.Second)
	rec, err := s.Submit("4")
	require.NoError(t, err)
	assert.True(t, rec.IsCorrect)
	assert.Equal(t, 3*time.Second, rec.ResponseTime)
	assert.Contains(t, s.Choices(), "6")

	clock.advance(5 * time.Second)
	rec, err = s.Submit("7")
	require.NoError(t, err)
	assert.False(t, rec.IsCorrect)
	assert.Equal(t, 5*time.Second, rec.ResponseTime)
	assert.Equal(t, PhaseCompleted, s.Phase())

	record, ok := s.TakeRecord()
	require.True(t, ok)
	assert.Equal(t, 1, record.CorrectAnswers)
	assert.Equal(t, 1, record.Score)
	assert.Equal(t, 2, record.TotalQuestions)
	assert.Equal(t, 50, record.Percentage())
	assert.Equal(t, "multiple-choice", record.Mode)
	assert.Equal(t, "set-42", record.SetID)
	assert.Equal(t, int64(8), record.TimeTaken)
	assert.NotEmpty(t, record.ID)

	res := s.Result()
	require.NotNil(t, res)
	assert.Equal(t, 50, res.Percentage)
	assert.Equal(t, 8*time.Second, res.TotalTime)
	assert.Equal(t, 4*time.Second, res.AverageTime)
	require.Len(t, res.Answers, 2)
	assert.Equal(t, 0, res.Answers[0].QuestionIndex)
	assert.Equal(t, 1, res.Answers[1].QuestionIndex)
}

func TestTypeAnswer_Normalization(t *testing.T) {
	s, _ := newTestSession(t)
	d := &deck.Deck{SetID: "geo", SetName: "Capitals", Cards: []deck.Card{
		{Question: "Capital of France?", Answer: "Paris"},
		{Question: "Capital of Italy?", Answer: "Rome"},
	}}
	require.NoError(t, s.Start(ModeTypeAnswer, d))
	assert.Empty(t, s.Choices())

	rec, err := s.Submit("paris ")
	require.NoError(t, err)
	assert.True(t, rec.IsCorrect)

	rec, err = s.Submit("")
	require.NoError(t, err)
	assert.False(t, rec.IsCorrect)

	res := s.Result()
	require.NotNil(t, res)
	assert.Equal(t, 1, res.CorrectAnswers)
}

func TestWholeTestExpiry_CompletesWithNoAnswers(t *testing.T) {
	s, clock := newTestSession(t)
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModeWholeTest, Duration: time.Minute}))
	require.NoError(t, s.Start(ModeMultipleChoice, arithmeticDeck()))
	require.True(t, s.TimerRunning())

	gen := s.TimerGeneration()
	for i := 0; i < 59; i++ {
		clock.advance(time.Second)
		assert.Equal(t, timer.EventNone, s.Tick(gen, time.Second))
	}
	clock.advance(time.Second)
	assert.Equal(t, timer.EventTestExpired, s.Tick(gen, time.Second))

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.True(t, s.TimedOut())
	assert.False(t, s.TimerRunning())
	assert.Empty(t, s.Answers())

	record, ok := s.TakeRecord()
	require.True(t, ok)
	assert.Equal(t, 0, record.CorrectAnswers)
	assert.Equal(t, 2, record.TotalQuestions)
	assert.Equal(t, timer.ModeWholeTest, record.Settings.Mode)

	assert.Equal(t, timer.EventNone, s.Tick(gen, time.Second))
	_, err := s.Submit("4")
	assert.ErrorIs(t, err, ErrNotActive)
}

func TestPerQuestionExpiry_SubmitsEmptyAnswer(t *testing.T) {
	s, clock := newTestSession(t)
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModePerQuestion, Duration: 10 * time.Second}))
	require.NoError(t, s.Start(ModeTypeAnswer, arithmeticDeck()))

	gen := s.TimerGeneration()
	clock.advance(10 * time.Second)
	assert.Equal(t, timer.EventQuestionExpired, s.Tick(gen, 10*time.Second))

	answers := s.Answers()
	require.Len(t, answers, 1)
	assert.Equal(t, "", answers[0].UserAnswer)
	assert.False(t, answers[0].IsCorrect)
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 10*time.Second, s.Remaining())
	assert.True(t, s.TimerRunning())

	_, err := s.Submit("6")
	require.NoError(t, err)
	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.False(t, s.TimedOut())
	assert.False(t, s.TimerRunning())
}

func TestPerQuestion_AnswerRestartsCountdown(t *testing.T) {
	s, clock := newTestSession(t)
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModePerQuestion, Duration: time.Second}))
	require.NoError(t, s.Start(ModeTypeAnswer, arithmeticDeck()))

	gen := s.TimerGeneration()
	clock.advance(300 * time.Millisecond)
	_, err := s.Submit("4")
	require.NoError(t, err)
	assert.NotEqual(t, gen, s.TimerGeneration())
	assert.Equal(t, time.Second, s.Remaining())

	// The tick scheduled during the first question lands after the answer.
	assert.Equal(t, timer.EventNone, s.Tick(gen, time.Second))
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 1, s.Index())
	assert.Len(t, s.Answers(), 1)
	assert.Equal(t, time.Second, s.Remaining())

	clock.advance(time.Second)
	assert.Equal(t, timer.EventQuestionExpired, s.Tick(s.TimerGeneration(), time.Second))
	answers := s.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, time.Second, answers[1].ResponseTime)
}

func TestPairMode_AlwaysReportsAllPairsCorrect(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Start(ModePair, arithmeticDeck()))
	require.NotNil(t, s.Puzzle())

	out, err := s.SelectPairQuestion(0)
	require.NoError(t, err)
	assert.Equal(t, quiz.PairPending, out)
	out, _ = s.SelectPairAnswer(1)
	assert.Equal(t, quiz.PairMismatched, out)

	out, _ = s.SelectPairQuestion(1)
	assert.Equal(t, quiz.PairIgnored, out, "taps ignored while mismatch shown")
	s.ClearPairMismatch()

	_, _ = s.SelectPairQuestion(0)
	out, _ = s.SelectPairAnswer(0)
	assert.Equal(t, quiz.PairMatched, out)
	assert.Equal(t, PhaseActive, s.Phase())

	_, _ = s.SelectPairAnswer(1)
	out, _ = s.SelectPairQuestion(1)
	assert.Equal(t, quiz.PairMatched, out)
	assert.Equal(t, PhaseCompleted, s.Phase())

	record, ok := s.TakeRecord()
	require.True(t, ok)
	assert.Equal(t, 2, record.CorrectAnswers)
	assert.Equal(t, 2, record.TotalQuestions)
	assert.Equal(t, 100, record.Percentage())

	res := s.Result()
	require.NotNil(t, res)
	assert.Empty(t, res.Answers)
	assert.Equal(t, []quiz.Pair{{QuestionIndex: 0, AnswerIndex: 0}, {QuestionIndex: 1, AnswerIndex: 1}}, res.Pairs)
}

func TestPairMode_TimeoutRecordsConfirmedPairs(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModeWholeTest, Duration: 30 * time.Second}))
	require.NoError(t, s.Start(ModePair, arithmeticDeck()))

	_, _ = s.SelectPairQuestion(1)
	_, _ = s.SelectPairAnswer(1)
	s.Tick(s.TimerGeneration(), 30*time.Second)

	record, ok := s.TakeRecord()
	require.True(t, ok)
	assert.Equal(t, 1, record.CorrectAnswers)
	assert.Equal(t, 2, record.TotalQuestions)
}

func TestTakeRecord_OnlyOnce(t *testing.T) {
	s, _ := newTestSession(t)
	_, ok := s.TakeRecord()
	assert.False(t, ok, "no record before completion")

	require.NoError(t, s.Start(ModeTypeAnswer, &deck.Deck{SetID: "s", Cards: []deck.Card{{Question: "q", Answer: "a"}}}))
	_, err := s.Submit("a")
	require.NoError(t, err)

	_, ok = s.TakeRecord()
	assert.True(t, ok)
	_, ok = s.TakeRecord()
	assert.False(t, ok)

	s.Tick(s.TimerGeneration(), time.Hour)
	s.Close()
	_, ok = s.TakeRecord()
	assert.False(t, ok)
}

func TestConfigure_OnlyBeforeStart(t *testing.T) {
	s, _ := newTestSession(t)
	assert.Error(t, s.Configure(timer.Settings{Mode: timer.ModePerQuestion}))
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModePerQuestion, Duration: 5 * time.Second}))
	require.NoError(t, s.Start(ModeMultipleChoice, arithmeticDeck()))

	err := s.Configure(timer.Settings{Mode: timer.ModeOff})
	assert.ErrorIs(t, err, ErrSessionStarted)
	assert.Equal(t, timer.ModePerQuestion, s.TimerSettings().Mode)
}

func TestStart_Guards(t *testing.T) {
	s, _ := newTestSession(t)
	assert.ErrorIs(t, s.Start(ModeMultipleChoice, &deck.Deck{}), deck.ErrEmptySet)
	assert.ErrorIs(t, s.Start(ModeMultipleChoice, nil), deck.ErrEmptySet)
	assert.Error(t, s.Start(Mode(99), arithmeticDeck()))
	assert.Equal(t, PhaseModeSelection, s.Phase())

	require.NoError(t, s.Start(ModeMultipleChoice, arithmeticDeck()))
	assert.NotEmpty(t, s.ID())
	assert.ErrorIs(t, s.Start(ModePair, arithmeticDeck()), ErrSessionStarted)
}

func TestWrongModeActions(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Submit("x")
	assert.ErrorIs(t, err, ErrNotActive)

	require.NoError(t, s.Start(ModePair, arithmeticDeck()))
	_, err = s.Submit("4")
	assert.ErrorIs(t, err, ErrWrongMode)

	mc, _ := newTestSession(t)
	require.NoError(t, mc.Start(ModeMultipleChoice, arithmeticDeck()))
	_, err = mc.SelectPairQuestion(0)
	assert.ErrorIs(t, err, ErrWrongMode)
	assert.ErrorIs(t, mc.Finish(), ErrWrongMode)
}

func TestReviewMode(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModeWholeTest, Duration: time.Second}))
	require.NoError(t, s.Start(ModeReview, arithmeticDeck()))
	assert.False(t, s.TimerRunning(), "review is untimed")

	card, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "2+2?", card.Question)

	assert.False(t, s.Prev())
	assert.True(t, s.Next())
	assert.False(t, s.Next())
	assert.Equal(t, 1, s.Index())
	assert.True(t, s.Prev())

	require.NoError(t, s.Finish())
	assert.Equal(t, PhaseCompleted, s.Phase())
	_, ok = s.TakeRecord()
	assert.False(t, ok)
	assert.Nil(t, s.Result())
}

func TestClose_AbandonsWithoutRecord(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Configure(timer.Settings{Mode: timer.ModePerQuestion, Duration: 5 * time.Second}))
	require.NoError(t, s.Start(ModeMultipleChoice, arithmeticDeck()))
	gen := s.TimerGeneration()

	s.Close()
	assert.True(t, s.Abandoned())
	assert.False(t, s.TimerRunning())
	assert.Equal(t, timer.EventNone, s.Tick(gen, time.Minute))
	assert.Empty(t, s.Answers())

	_, ok := s.TakeRecord()
	assert.False(t, ok)
	assert.Nil(t, s.Result())
}

func TestResult_JSON(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.Start(ModeTypeAnswer, arithmeticDeck()))
	_, _ = s.Submit("4")
	_, _ = s.Submit("6")

	b, err := json.Marshal(s.Result())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"mode":"type-answer"`)
	assert.Contains(t, string(b), `"percentage":100`)
	assert.Contains(t, string(b), `"setName":"Arithmetic"`)
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("speed-round")
	assert.Error(t, err)
}
