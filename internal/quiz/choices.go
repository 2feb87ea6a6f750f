package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/flashquiz/internal/deck"
)

// ChoiceCount is the number of options shown for a multiple-choice question.
const ChoiceCount = 4

// placeholderOptions pad the option list when the deck has too few distinct
// answers to draw distractors from.
var placeholderOptions = []string{"Option A", "Option B", "Option C", "Option D", "Option E"}

// BuildChoices returns exactly ChoiceCount options for cards[index]: the
// correct answer plus distractors drawn without replacement from the other
// cards' answers, padded with placeholders when needed, in random order.
// It returns nil if index is out of range.
func BuildChoices(cards []deck.Card, index int, rng *rand.Rand) []string {
	if index < 0 || index >= len(cards) {
		return nil
	}
	correct := cards[index].Answer

	seen := map[string]bool{NormalizeAnswer(correct): true}
	var pool []string
	for i, c := range cards {
		if i == index {
			continue
		}
		key := NormalizeAnswer(c.Answer)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		pool = append(pool, c.Answer)
	}

	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }, rng)

	options := make([]string, 0, ChoiceCount)
	options = append(options, correct)
	for _, a := range pool {
		if len(options) == ChoiceCount {
			break
		}
		options = append(options, a)
	}
	for _, p := range placeholderOptions {
		if len(options) == ChoiceCount {
			break
		}
		if seen[NormalizeAnswer(p)] {
			continue
		}
		seen[NormalizeAnswer(p)] = true
		options = append(options, p)
	}

	shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] }, rng)
	return options
}

func shuffle(n int, swap func(i, j int), rng *rand.Rand) {
	if rng != nil {
		rng.Shuffle(n, swap)
		return
	}
	rand.Shuffle(n, swap)
}
