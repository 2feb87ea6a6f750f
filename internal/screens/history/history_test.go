package history

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/results"
	"github.com/abhisek/flashquiz/internal/timer"
)

type memStore struct{ records []results.Record }

func (m *memStore) Append(_ context.Context, r results.Record) bool {
	m.records = append(m.records, r)
	return true
}

func (m *memStore) LoadAll(context.Context) []results.Record { return m.records }

func sample() *memStore {
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	return &memStore{records: []results.Record{
		{ID: "a", SetName: "Capitals", Mode: "multiple-choice", CorrectAnswers: 2, TotalQuestions: 4, CompletedAt: at, TimeTaken: 30},
		{ID: "b", SetName: "Verbs", Mode: "type-answer", CorrectAnswers: 3, TotalQuestions: 3, CompletedAt: at.Add(time.Hour), TimeTaken: 45,
			Settings: timer.Settings{Mode: timer.ModeWholeTest, Duration: time.Minute}},
	}}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistory_NewestFirst(t *testing.T) {
	s := New(sample())
	assert.Contains(t, s.View(120, 40), "Loading history")
	load(t, s)

	require.Len(t, s.records, 2)
	assert.Equal(t, "b", s.records[0].ID)
	assert.Equal(t, 2, s.summary.Quizzes)
	assert.Equal(t, 75, s.summary.AveragePercent)
	assert.Equal(t, 100, s.summary.BestPercent)

	view := s.View(120, 40)
	assert.Contains(t, view, "Verbs")
	assert.Contains(t, view, "Type the answer")
}

func TestHistory_ExpandAndNavigate(t *testing.T) {
	s := New(sample())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, s.expanded[0])
	assert.Contains(t, s.View(120, 40), "timer whole-test 1:00")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)
}

func TestHistory_Empty(t *testing.T) {
	s := New(nil)
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No quizzes yet")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
