package quiz

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPairPuzzle_TagsByDeckIndex(t *testing.T) {
	cards := makeCards("4", "6", "8")
	p := NewPairPuzzle(cards, rand.New(rand.NewPCG(1, 2)))

	require.Len(t, p.Questions(), 3)
	require.Len(t, p.Answers(), 3)
	for _, q := range p.Questions() {
		assert.Equal(t, cards[q.Index].Question, q.Text)
	}
	for _, a := range p.Answers() {
		assert.Equal(t, cards[a.Index].Answer, a.Text)
	}
	assert.Equal(t, 3, p.Total())
	assert.False(t, p.Complete())
}

func TestPairPuzzle_Match(t *testing.T) {
	p := NewPairPuzzle(makeCards("4", "6"), nil)

	assert.Equal(t, PairPending, p.SelectQuestion(1))
	assert.Equal(t, PairMatched, p.SelectAnswer(1))

	assert.Equal(t, []Pair{{QuestionIndex: 1, AnswerIndex: 1}}, p.Confirmed())
	assert.Len(t, p.Questions(), 1)
	assert.Len(t, p.Answers(), 1)
	_, selected := p.SelectedQuestion()
	assert.False(t, selected)

	// Matched items left the pools.
	assert.Equal(t, PairIgnored, p.SelectQuestion(1))
}

func TestPairPuzzle_AnswerFirst(t *testing.T) {
	p := NewPairPuzzle(makeCards("4", "6"), nil)
	assert.Equal(t, PairPending, p.SelectAnswer(0))
	assert.Equal(t, PairMatched, p.SelectQuestion(0))
}

func TestPairPuzzle_Mismatch(t *testing.T) {
	p := NewPairPuzzle(makeCards("4", "6"), nil)

	p.SelectQuestion(0)
	assert.Equal(t, PairMismatched, p.SelectAnswer(1))

	mm, ok := p.Mismatch()
	require.True(t, ok)
	assert.Equal(t, Pair{QuestionIndex: 0, AnswerIndex: 1}, mm)
	assert.Empty(t, p.Confirmed())

	// Taps are ignored while the error is shown.
	assert.Equal(t, PairIgnored, p.SelectQuestion(1))

	p.ClearMismatch()
	_, ok = p.Mismatch()
	assert.False(t, ok)
	_, qSel := p.SelectedQuestion()
	_, aSel := p.SelectedAnswer()
	assert.False(t, qSel)
	assert.False(t, aSel)
	assert.Len(t, p.Questions(), 2)
}

func TestPairPuzzle_Deselect(t *testing.T) {
	p := NewPairPuzzle(makeCards("4", "6"), nil)
	p.SelectQuestion(0)
	assert.Equal(t, PairPending, p.SelectQuestion(0))
	_, ok := p.SelectedQuestion()
	assert.False(t, ok)
}

func TestPairPuzzle_SingleCard(t *testing.T) {
	p := NewPairPuzzle(makeCards("only"), nil)
	p.SelectQuestion(0)
	assert.Equal(t, PairMatched, p.SelectAnswer(0))
	assert.True(t, p.Complete())
}

func TestPairPuzzle_ConfirmationOrder(t *testing.T) {
	p := NewPairPuzzle(makeCards("a", "b", "c"), nil)
	for _, i := range []int{2, 0, 1} {
		p.SelectQuestion(i)
		p.SelectAnswer(i)
	}
	assert.True(t, p.Complete())
	assert.Equal(t, []Pair{{2, 2}, {0, 0}, {1, 1}}, p.Confirmed())
}

func TestPairOutcome_String(t *testing.T) {
	assert.Equal(t, "matched", PairMatched.String())
	assert.Equal(t, "ignored", PairIgnored.String())
}
