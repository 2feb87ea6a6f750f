package deck

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Fetcher retrieves a set with its cards. The backend set-detail client and
// the offline deck sources implement it.
type Fetcher interface {
	FetchSet(ctx context.Context, setID string) (*Set, error)
}

// Loader builds shuffled decks from a Fetcher.
type Loader struct {
	fetcher Fetcher
	rng     *rand.Rand
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRand makes shuffling deterministic. Used by tests.
func WithRand(rng *rand.Rand) LoaderOption {
	return func(l *Loader) {
		l.rng = rng
	}
}

// NewLoader creates a Loader backed by f.
func NewLoader(f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{fetcher: f}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the set and returns a freshly shuffled deck for one session.
// The card slice returned by the fetcher keeps its original order.
func (l *Loader) Load(ctx context.Context, setID string) (*Deck, error) {
	set, err := l.fetcher.FetchSet(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("fetch set %s: %w", setID, err)
	}
	if set == nil || len(set.Cards) == 0 {
		return nil, fmt.Errorf("set %s: %w", setID, ErrEmptySet)
	}

	name := set.Name
	if name == "" {
		name = setID
	}
	id := set.ID
	if id == "" {
		id = setID
	}

	return &Deck{
		SetID:   id,
		SetName: name,
		Subject: set.Subject,
		Cards:   Shuffle(set.Cards, l.rng),
	}, nil
}
