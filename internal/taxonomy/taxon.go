// internal/taxonomy/taxon.go
//
// Taxon: the full classification of one organism, sourced from a single
// observation record. Immutable once built. Species conventionally equals
// the scientific name.

package taxonomy

// Taxon holds the seven-rank classification of one organism.
type Taxon struct {
	ID             int    `json:"id"`
	ScientificName string `json:"scientificName"`
	Kingdom        string `json:"kingdom"`
	Phylum         string `json:"phylum"`
	Class          string `json:"class"`
	Order          string `json:"order"`
	Family         string `json:"family"`
	Genus          string `json:"genus"`
	Species        string `json:"species"`
}

// ValueAt returns the taxon's value at the given rank.
// Exhaustive over the seven ranks; an invalid rank yields "".
func (t Taxon) ValueAt(r Rank) string {
	switch r {
	case RankKingdom:
		return t.Kingdom
	case RankPhylum:
		return t.Phylum
	case RankClass:
		return t.Class
	case RankOrder:
		return t.Order
	case RankFamily:
		return t.Family
	case RankGenus:
		return t.Genus
	case RankSpecies:
		return t.Species
	}
	return ""
}
