// internal/hints/resolver.go
//
// HintResolver: fetches encyclopedia extracts for a small set of candidate
// taxa concurrently. Failures are isolated per item — an unreachable API or
// a missing page yields placeholder text for that name, never an error for
// the batch. Completion order is irrelevant; results are keyed by name.

package hints

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups bounds the fan-out against the external API.
const maxConcurrentLookups = 4

// Resolver orchestrates summary lookups over a SummaryFetcher.
type Resolver struct {
	fetcher SummaryFetcher
}

// NewResolver builds a Resolver over the given fetcher.
func NewResolver(fetcher SummaryFetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Resolve fetches extracts for every name concurrently and returns a
// complete name→text map. Per-item failures become placeholder strings:
//   - page missing:      "No information available for <name>"
//   - page has no text:  "No description available for <name>"
//   - lookup failed:     "Failed to fetch information for <name>"
func (r *Resolver) Resolve(ctx context.Context, names []string) map[string]string {
	texts := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			summary, err := r.fetcher.FetchSummary(ctx, name)
			switch {
			case errors.Is(err, ErrNotFound):
				texts[i] = "No information available for " + name
			case err != nil:
				texts[i] = "Failed to fetch information for " + name
			case summary.Extract == "":
				texts[i] = "No description available for " + name
			default:
				texts[i] = summary.Extract
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; placeholders absorb failures

	out := make(map[string]string, len(names))
	for i, name := range names {
		out[name] = texts[i]
	}
	return out
}
