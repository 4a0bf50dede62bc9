package assets

import (
	"embed"
)

//go:embed taxonomy/*.json observations.csv
var FS embed.FS

// TaxonomyTable returns the embedded JSON bytes for one parent→children
// table, e.g. "kingdom_to_phylum".
func TaxonomyTable(name string) ([]byte, error) {
	return FS.ReadFile("taxonomy/" + name + ".json")
}

// ObservationsCSV returns the embedded fallback observation dataset.
// Small sample so the server runs even if no data files are configured.
func ObservationsCSV() ([]byte, error) {
	return FS.ReadFile("observations.csv")
}
