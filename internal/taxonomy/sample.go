// internal/taxonomy/sample.go
//
// Random downsampling of option sets for reduced-difficulty play.
// Deliberately non-deterministic: this is per-render cosmetic shuffling,
// unlike the deterministic record selection in internal/question. The two
// randomness sources must never be merged.

package taxonomy

import (
	"fmt"
	"math/rand"
)

// Sample returns min(count, len(all)) options drawn from all, always
// including correct, with the combined result shuffled so the correct
// answer's position is not predictable.
//
// correct must be present in all; if it is not, the option table and the
// dataset disagree, which is a data-integrity error, not a recoverable
// runtime condition.
func Sample(all []string, correct string, count int) ([]string, error) {
	if !contains(all, correct) {
		return nil, fmt.Errorf("taxonomy: correct answer %q missing from its option set", correct)
	}
	if count >= len(all) {
		out := append([]string(nil), all...)
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out, nil
	}
	if count < 1 {
		count = 1
	}

	// Pool of wrong answers, to draw count-1 from.
	pool := make([]string, 0, len(all)-1)
	for _, opt := range all {
		if opt != correct {
			pool = append(pool, opt)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := append(pool[:count-1], correct)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}
