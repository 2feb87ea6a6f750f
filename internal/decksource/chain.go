package decksource

import (
	"context"
	"errors"

	"github.com/abhisek/flashquiz/internal/deck"
)

// Source is a deck source that can both list and fetch sets.
type Source interface {
	deck.Fetcher
	deck.Lister
}

// Chain tries each source in order. Local sources go first so offline sets
// shadow remote ones with the same ID.
type Chain []Source

// FetchSet returns the set from the first source that has it. A "not found"
// from an earlier source never hides a real error from a later one.
func (c Chain) FetchSet(ctx context.Context, setID string) (*deck.Set, error) {
	var firstErr error
	for _, src := range c {
		set, err := src.FetchSet(ctx, setID)
		if err == nil {
			return set, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, ErrNotFound
}

// ListSets merges every source's listing. Sources that fail contribute
// nothing and their errors are returned alongside the merged list.
func (c Chain) ListSets(ctx context.Context) ([]deck.SetSummary, error) {
	var lists [][]deck.SetSummary
	var errs []error
	for _, src := range c {
		sets, err := src.ListSets(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		lists = append(lists, sets)
	}
	return deck.MergeSummaries(lists...), errors.Join(errs...)
}
