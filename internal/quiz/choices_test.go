package quiz

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/flashquiz/internal/deck"
)

func makeCards(answers ...string) []deck.Card {
	cards := make([]deck.Card, len(answers))
	for i, a := range answers {
		cards[i] = deck.Card{ID: fmt.Sprint(i), Question: fmt.Sprintf("Q%d", i), Answer: a}
	}
	return cards
}

func TestBuildChoices_AlwaysFourWithCorrect(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	for n := 1; n <= 8; n++ {
		answers := make([]string, n)
		for i := range answers {
			answers[i] = fmt.Sprintf("answer-%d", i)
		}
		cards := makeCards(answers...)

		for idx := range cards {
			opts := BuildChoices(cards, idx, rng)
			require.Len(t, opts, ChoiceCount, "deck size %d index %d", n, idx)
			assert.Contains(t, opts, cards[idx].Answer)

			unique := map[string]bool{}
			for _, o := range opts {
				assert.False(t, unique[o], "duplicate option %q", o)
				unique[o] = true
			}
		}
	}
}

func TestBuildChoices_PadsOnlyWhenShort(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 9))

	opts := BuildChoices(makeCards("4"), 0, rng)
	placeholders := 0
	for _, o := range opts {
		if strings.HasPrefix(o, "Option ") {
			placeholders++
		}
	}
	assert.Equal(t, 3, placeholders)

	opts = BuildChoices(makeCards("1", "2", "3", "4", "5"), 2, rng)
	for _, o := range opts {
		assert.False(t, strings.HasPrefix(o, "Option "), "unexpected placeholder %q", o)
	}
}

func TestBuildChoices_DuplicateAnswersPadded(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	cards := makeCards("yes", "Yes", "no", "no ")

	opts := BuildChoices(cards, 0, rng)
	require.Len(t, opts, ChoiceCount)
	assert.Contains(t, opts, "yes")
	assert.Contains(t, opts, "no")
	assert.NotContains(t, opts, "Yes")
}

func TestBuildChoices_PlaceholderCollision(t *testing.T) {
	cards := makeCards("Option A", "Option B")
	opts := BuildChoices(cards, 0, rand.New(rand.NewPCG(2, 3)))
	require.Len(t, opts, ChoiceCount)

	sorted := slices.Clone(opts)
	slices.Sort(sorted)
	assert.Equal(t, []string{"Option A", "Option B", "Option C", "Option D"}, sorted)
}

func TestBuildChoices_CorrectPositionVaries(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	cards := makeCards("a", "b", "c", "d", "e")
	positions := map[int]bool{}
	for range 50 {
		opts := BuildChoices(cards, 0, rng)
		positions[slices.Index(opts, "a")] = true
	}
	assert.Greater(t, len(positions), 1)
}

func TestBuildChoices_OutOfRange(t *testing.T) {
	assert.Nil(t, BuildChoices(makeCards("a"), 3, nil))
	assert.Nil(t, BuildChoices(nil, 0, nil))
}
