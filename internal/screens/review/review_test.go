package review

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/router"
	"github.com/abhisek/flashquiz/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newReview(t *testing.T) *ReviewScreen {
	t.Helper()
	s := session.New()
	require.NoError(t, s.Start(session.ModeReview, &deck.Deck{
		SetID:   "bio",
		SetName: "Biology",
		Cards: []deck.Card{
			{Question: "Powerhouse of the cell", Answer: "Mitochondria"},
			{Question: "Unit of heredity", Answer: "Gene"},
		},
	}))
	return New(s)
}

func TestReview_Flip(t *testing.T) {
	r := newReview(t)
	assert.Contains(t, r.View(100, 30), "Powerhouse of the cell")

	r.Update(specialKey(tea.KeySpace))
	assert.True(t, r.flipped)
	assert.Contains(t, r.View(100, 30), "Mitochondria")

	r.Update(specialKey(tea.KeySpace))
	assert.False(t, r.flipped)
}

func TestReview_Navigate(t *testing.T) {
	r := newReview(t)
	r.Update(specialKey(tea.KeySpace))

	r.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 1, r.sess.Index())
	assert.False(t, r.flipped, "moving shows the question side")

	r.Update(specialKey(tea.KeyRight))
	assert.Equal(t, 1, r.sess.Index(), "stops at the last card")

	r.Update(keyPress('h'))
	assert.Equal(t, 0, r.sess.Index())
}

func TestReview_FinishProducesNoRecord(t *testing.T) {
	r := newReview(t)
	_, cmd := r.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, session.PhaseCompleted, r.sess.Phase())

	_, ok := r.sess.TakeRecord()
	assert.False(t, ok)
	assert.Nil(t, r.sess.Result())
}

func TestReview_TitleAndHints(t *testing.T) {
	r := newReview(t)
	assert.Equal(t, "Biology · Review", r.Title())
	assert.Len(t, r.KeyHints(), 4)
}
