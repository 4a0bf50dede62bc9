// internal/taxonomy/descriptions.go
//
// Short kingdom blurbs shown as rank-0 hints. Wikipedia lookups are
// overkill for six fixed kingdoms, so these ship with the binary.

package taxonomy

// KingdomDescriptions maps each kingdom to a one-line description.
var KingdomDescriptions = map[string]string{
	"Animalia": "Animals consume organic material, breathe oxygen, and can move.",
	"Plantae":  "Plants are photosynthetic organisms with cellulose cell walls.",
	"Fungi":    "Fungi digest food externally and absorb nutrients.",
	"Protista": "Protists are diverse eukaryotic organisms.",
	"Bacteria": "Single-celled microorganisms without a nucleus.",
	"Archaea":  "Single-celled organisms similar to bacteria but with different cell chemistry.",
}
