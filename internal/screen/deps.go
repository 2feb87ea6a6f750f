package screen

import (
	"context"
	"log/slog"

	"github.com/abhisek/flashquiz/internal/deck"
	"github.com/abhisek/flashquiz/internal/results"
	"github.com/abhisek/flashquiz/internal/timer"
)

// DeckLoader produces a shuffled deck for a set.
type DeckLoader interface {
	Load(ctx context.Context, setID string) (*deck.Deck, error)
}

// ResultStore persists and reads the current user's quiz records.
type ResultStore interface {
	Append(ctx context.Context, rec results.Record) bool
	LoadAll(ctx context.Context) []results.Record
}

// Deps are the services screens reach through. Any field may be nil except
// Logger; screens degrade to an explanatory message.
type Deps struct {
	Sets    deck.Lister
	Decks   DeckLoader
	Results ResultStore
	Timer   timer.Settings
	Logger  *slog.Logger
}

// Log returns the logger, or a discarding one.
func (d *Deps) Log() *slog.Logger {
	if d == nil || d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
