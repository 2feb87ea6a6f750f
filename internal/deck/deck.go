package deck

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptySet is returned when a set has no cards to quiz on.
var ErrEmptySet = errors.New("set has no cards")

// Card is a single question/answer pair belonging to a set.
type Card struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Set is a named collection of cards as returned by a deck source.
type Set struct {
	ID      string
	Name    string
	Subject string
	Cards   []Card
}

// Deck is the shuffled working copy of a set's cards for one session.
type Deck struct {
	SetID   string
	SetName string
	Subject string
	Cards   []Card
}

// Len returns the number of cards in the deck.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cards)
}

// Card returns the card at index i.
func (d *Deck) Card(i int) (Card, bool) {
	if d == nil || i < 0 || i >= len(d.Cards) {
		return Card{}, false
	}
	return d.Cards[i], true
}

// Shuffle returns a fully permuted copy of cards. The input is not modified.
// A nil rng uses the package-level generator.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if rng != nil {
		rng.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}
