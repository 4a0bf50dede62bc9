// internal/taxonomy/index.go
//
// TaxonomyIndex: the six parent→children lookup tables plus the fixed
// kingdom list. Answers "what are the valid options at rank R, given the
// chosen parent at rank R-1".
//
// Loading behavior (Load):
//   1. If a directory is given, read the six *.json tables from it.
//   2. Otherwise fall back to the embedded tables in assets/.
//
// Tables are loaded once at startup and never mutated afterwards, so the
// index is safe for unlimited concurrent readers.

package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/animo-game/go-server/assets"
)

// Kingdoms is the fixed option list at rank 0. Always served verbatim.
var Kingdoms = []string{"Animalia", "Plantae", "Fungi", "Protista", "Bacteria", "Archaea"}

// tableNames maps each child rank to the file/table holding its
// parent→children mapping.
var tableNames = map[Rank]string{
	RankPhylum:  "kingdom_to_phylum",
	RankClass:   "phylum_to_class",
	RankOrder:   "class_to_order",
	RankFamily:  "order_to_family",
	RankGenus:   "family_to_genus",
	RankSpecies: "genus_to_species",
}

// Index wraps the six lookup tables, keyed by the child rank.
type Index struct {
	tables map[Rank]map[string][]string
}

// Load builds an Index from JSON tables in dir, or from the embedded
// defaults when dir is empty.
func Load(dir string) (*Index, error) {
	idx := &Index{tables: make(map[Rank]map[string][]string, len(tableNames))}
	for rank, name := range tableNames {
		var raw []byte
		var err error
		if dir != "" {
			raw, err = os.ReadFile(filepath.Join(dir, name+".json"))
		} else {
			raw, err = assets.TaxonomyTable(name)
		}
		if err != nil {
			return nil, fmt.Errorf("taxonomy: load table %s: %w", name, err)
		}
		var table map[string][]string
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("taxonomy: parse table %s: %w", name, err)
		}
		idx.tables[rank] = table
	}
	return idx, nil
}

// OptionsFor returns the valid option list at rank, given the accepted
// parent value one rank up.
//
// Rules:
//   - rank == kingdom, or empty parent → the fixed kingdom list.
//   - unknown rank → error (configuration bug, never defaulted).
//   - parent absent from its table → empty slice ("no data", not an error).
//
// The returned slice is a copy; callers may shuffle or trim it freely.
func (idx *Index) OptionsFor(rank Rank, parent string) ([]string, error) {
	if rank == RankKingdom || parent == "" {
		return append([]string(nil), Kingdoms...), nil
	}
	table, ok := idx.tables[rank]
	if !ok {
		return nil, fmt.Errorf("taxonomy: no option table for rank %q", rank)
	}
	return append([]string(nil), table[parent]...), nil
}

// VerifyTaxon checks that every rank transition of t exists in the tables:
// the parent value must be a key and the child value must be among its
// children. A violation means the dataset and the lookup tables are
// mutually inconsistent, which is fatal at load time.
func (idx *Index) VerifyTaxon(t Taxon) error {
	for i := 1; i < NumRanks; i++ {
		parent := t.ValueAt(Ranks[i-1])
		child := t.ValueAt(Ranks[i])
		children, ok := idx.tables[Ranks[i]][parent]
		if !ok {
			return fmt.Errorf("taxonomy: %s %q of record %d missing from %s table",
				Ranks[i-1], parent, t.ID, tableNames[Ranks[i]])
		}
		if !contains(children, child) {
			return fmt.Errorf("taxonomy: %s %q of record %d not listed under %s %q",
				Ranks[i], child, t.ID, Ranks[i-1], parent)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
