// internal/taxonomy/rank.go
//
// The seven Linnaean ranks used by the game, coarsest to finest.
// Defines:
//   - Rank: string enum (kingdom..species).
//   - Ranks: the fixed ordered sequence (index 0 = kingdom, 6 = species).
//   - Per-rank letter keys (K P C O F G S) used in session/score maps.
//   - Per-rank score weights (kingdom mistakes cost the most).

package taxonomy

import "fmt"

// Rank is one of the seven taxonomic ranks.
type Rank string

const (
	RankKingdom Rank = "kingdom"
	RankPhylum  Rank = "phylum"
	RankClass   Rank = "class"
	RankOrder   Rank = "order"
	RankFamily  Rank = "family"
	RankGenus   Rank = "genus"
	RankSpecies Rank = "species"
)

// Ranks is the fixed progression order of the game. Never mutated.
var Ranks = [7]Rank{
	RankKingdom,
	RankPhylum,
	RankClass,
	RankOrder,
	RankFamily,
	RankGenus,
	RankSpecies,
}

// NumRanks is the length of the rank sequence.
const NumRanks = len(Ranks)

// ParseRank maps a rank name to its Rank value.
// An unrecognized name is a configuration error and is reported loudly
// rather than silently defaulted.
func ParseRank(s string) (Rank, error) {
	switch Rank(s) {
	case RankKingdom, RankPhylum, RankClass, RankOrder, RankFamily, RankGenus, RankSpecies:
		return Rank(s), nil
	}
	return "", fmt.Errorf("taxonomy: unknown rank %q", s)
}

// Index returns the position of r in Ranks (0 = kingdom .. 6 = species),
// or -1 for an invalid rank.
func (r Rank) Index() int {
	for i, rr := range Ranks {
		if rr == r {
			return i
		}
	}
	return -1
}

// Letter returns the one-letter key for r (K P C O F G S).
// Session guess histories and score maps are keyed by these letters.
func (r Rank) Letter() string {
	switch r {
	case RankKingdom:
		return "K"
	case RankPhylum:
		return "P"
	case RankClass:
		return "C"
	case RankOrder:
		return "O"
	case RankFamily:
		return "F"
	case RankGenus:
		return "G"
	case RankSpecies:
		return "S"
	}
	return ""
}

// Weight returns the score weight for a mistake at r:
// kingdom=7, phylum=6, ... species=1. Coarse mistakes cost more.
func (r Rank) Weight() int {
	if i := r.Index(); i >= 0 {
		return NumRanks - i
	}
	return 0
}
