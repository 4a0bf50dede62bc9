// internal/question/selector.go
//
// QuestionSelector: picks the observation record to pose as the question.
// Pipeline, in order:
//   1. Filter the pool by the enabled animal classes (birds/mammals/reptiles).
//   2. Drop excluded genera (suppresses over-represented taxa).
//   3. Permute the filtered indices deterministically per UTC day (daily.go).
//   4. Resolve a slot: explicit seed if given, else the current minute.
//
// Selection is fully deterministic for a fixed (day, seed-or-minute, pool),
// unlike the cosmetic option sampling in internal/taxonomy.

package question

import (
	"context"
	"errors"
	"time"

	"github.com/animo-game/go-server/internal/dataset"
)

// Recoverable "no content" conditions, distinguished from transport
// failures so the UI can show actionable guidance.
var (
	// ErrNoAnimalTypesSelected: every class toggle is off.
	ErrNoAnimalTypesSelected = errors.New("question: no animal types selected")
	// ErrNoMatchingRecords: the filter combination left an empty pool.
	ErrNoMatchingRecords = errors.New("question: no records match the current filters")
)

// ClassFilter selects which animal classes are eligible for questions.
type ClassFilter struct {
	Birds    bool `json:"birds"`
	Mammals  bool `json:"mammals"`
	Reptiles bool `json:"reptiles"`
}

// Any reports whether at least one class is enabled.
func (f ClassFilter) Any() bool { return f.Birds || f.Mammals || f.Reptiles }

// allows reports whether a record of the given class passes the filter.
func (f ClassFilter) allows(class string) bool {
	switch class {
	case "Aves":
		return f.Birds
	case "Mammalia":
		return f.Mammals
	case "Reptilia":
		return f.Reptiles
	}
	return false
}

// Selector picks one record per request from the cached dataset.
type Selector struct {
	cache    *dataset.Cache
	salt     string
	excluded map[string]struct{} // genera never served as questions
	now      func() time.Time
}

// NewSelector builds a Selector. A nil now defaults to time.Now.
func NewSelector(cache *dataset.Cache, salt string, excludedGenera []string, now func() time.Time) *Selector {
	if now == nil {
		now = time.Now
	}
	excluded := make(map[string]struct{}, len(excludedGenera))
	for _, g := range excludedGenera {
		excluded[g] = struct{}{}
	}
	return &Selector{cache: cache, salt: salt, excluded: excluded, now: now}
}

// Now returns the selector's current time (injected clock).
func (s *Selector) Now() time.Time { return s.now() }

// Select returns the question record for the given filter and optional
// explicit seed. With a nil seed the current minute picks the slot, so
// everyone sees the same question at the same time; a client-supplied
// seed gives per-player variety ("new question" requests).
func (s *Selector) Select(ctx context.Context, filter ClassFilter, seed *int64) (dataset.Record, error) {
	if !filter.Any() {
		return dataset.Record{}, ErrNoAnimalTypesSelected
	}
	records, err := s.cache.Records(ctx)
	if err != nil {
		return dataset.Record{}, err
	}

	pool := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if !filter.allows(rec.Class) {
			continue
		}
		if _, drop := s.excluded[rec.Genus]; drop {
			continue
		}
		pool = append(pool, rec)
	}
	n := len(pool)
	if n == 0 {
		return dataset.Record{}, ErrNoMatchingRecords
	}

	now := s.now()
	perm := dailyPermutation(daysSinceEpoch(now), s.salt, n)

	var slot int64
	if seed != nil {
		slot = *seed % int64(n)
		if slot < 0 {
			slot = -slot
		}
	} else {
		slot = minutesSinceEpoch(now) % int64(n)
	}
	return pool[perm[int(slot)]], nil
}
