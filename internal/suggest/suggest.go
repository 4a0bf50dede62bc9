// internal/suggest/suggest.go
//
// Typing suggestions for the free-text species field. Case-insensitive
// substring match against the scientific name, the genus, or any other
// taxonomic field of the cached dataset; results are deduplicated and
// capped. Queries under three characters return nothing — the dataset is
// large and one or two letters match almost everything.

package suggest

import (
	"context"
	"strings"

	"github.com/animo-game/go-server/internal/dataset"
)

const (
	// MinQueryLen is the shortest query that produces suggestions.
	MinQueryLen = 3
	// MaxSuggestions caps the response size.
	MaxSuggestions = 100
)

// Service serves typing suggestions from the cached dataset.
type Service struct {
	cache *dataset.Cache
}

// NewService builds a suggestion service over the record cache.
func NewService(cache *dataset.Cache) *Service {
	return &Service{cache: cache}
}

// Suggestions returns up to MaxSuggestions scientific names matching
// query. Below MinQueryLen the result is empty, not an error.
func (s *Service) Suggestions(ctx context.Context, query string) ([]string, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < MinQueryLen {
		return nil, nil
	}

	records, err := s.cache.Records(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		if !matches(rec, query) {
			continue
		}
		if _, dup := seen[rec.ScientificName]; dup {
			continue
		}
		seen[rec.ScientificName] = struct{}{}
		out = append(out, rec.ScientificName)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out, nil
}

// matches reports whether any taxonomic field of rec contains query.
func matches(rec dataset.Record, query string) bool {
	for _, field := range []string{
		rec.ScientificName,
		rec.Genus,
		rec.Kingdom,
		rec.Phylum,
		rec.Class,
		rec.Order,
		rec.Family,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
