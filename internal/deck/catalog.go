package deck

import (
	"context"
	"sort"
	"strings"
)

// SetSummary describes a set without its cards, for pickers and listings.
type SetSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Subject   string `json:"subject,omitempty"`
	CardCount int    `json:"cardCount"`
	Source    string `json:"source,omitempty"`
}

// Lister enumerates the sets a source can provide.
type Lister interface {
	ListSets(ctx context.Context) ([]SetSummary, error)
}

// MergeSummaries combines listings, keeping the first entry seen for each
// set ID, sorted by name.
func MergeSummaries(lists ...[]SetSummary) []SetSummary {
	seen := make(map[string]bool)
	var out []SetSummary
	for _, list := range lists {
		for _, s := range list {
			if s.ID == "" || seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
