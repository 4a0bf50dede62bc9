// internal/dataset/dataset.go
//
// Observation record source for the question pool.
// Responsibilities:
//   - Define Record (a Taxon plus its observation image URL).
//   - Load records from a CSV file or fall back to the embedded sample.
//   - Verify dataset/taxonomy-table consistency at startup.
//
// Loading behavior (FromEnv in main):
//   1. OBSERVATIONS_DB set   → SQLite source (sqlite.go).
//   2. OBSERVATIONS_FILE set → CSV file source.
//   3. Neither               → embedded sample from assets/.
//
// Records are immutable after load; all mutation-free readers may share
// them concurrently.

package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/animo-game/go-server/assets"
	"github.com/animo-game/go-server/internal/taxonomy"
)

// Record is one observation row: the organism's classification plus the
// photo URL shown to the player.
type Record struct {
	taxonomy.Taxon
	TaxonRank  string `json:"taxonRank"`
	Identifier string `json:"identifier"` // image URL
}

// Source produces the full record list. Implementations: CSV file,
// SQLite database, embedded sample.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// FileSource reads records from a CSV file on disk.
type FileSource struct{ Path string }

// Load reads and parses the CSV file.
func (s FileSource) Load(ctx context.Context) ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// EmbeddedSource serves the small sample dataset compiled into the binary.
type EmbeddedSource struct{}

// Load parses the embedded CSV.
func (EmbeddedSource) Load(ctx context.Context) ([]Record, error) {
	raw, err := assets.ObservationsCSV()
	if err != nil {
		return nil, fmt.Errorf("dataset: embedded sample: %w", err)
	}
	return ParseCSV(bytes.NewReader(raw))
}

// ParseCSV decodes observation records from CSV with a header row.
// Column order is not significant. The class column may be spelled
// "classs" — the upstream export pipeline renames it to dodge the SQL
// reserved word, and existing data files carry that header.
func ParseCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	classCol, ok := col["classs"]
	if !ok {
		classCol, ok = col["class"]
	}
	if !ok {
		return nil, fmt.Errorf("dataset: missing class column")
	}
	for _, required := range []string{"id", "scientificName", "kingdom", "phylum", "order", "family", "genus", "identifier"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("dataset: missing column %q", required)
		}
	}

	var out []Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: %w", line, err)
		}
		field := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		id, err := strconv.Atoi(field(col["id"]))
		if err != nil {
			return nil, fmt.Errorf("dataset: line %d: bad id %q", line, field(col["id"]))
		}
		name := field(col["scientificName"])
		rec := Record{
			Taxon: taxonomy.Taxon{
				ID:             id,
				ScientificName: name,
				Kingdom:        field(col["kingdom"]),
				Phylum:         field(col["phylum"]),
				Class:          field(classCol),
				Order:          field(col["order"]),
				Family:         field(col["family"]),
				Genus:          field(col["genus"]),
				Species:        name, // species == scientific name by convention
			},
			Identifier: field(col["identifier"]),
		}
		if i, ok := col["taxonRank"]; ok {
			rec.TaxonRank = field(i)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Verify checks every record's rank transitions against the taxonomy
// tables. Any mismatch means the static inputs are mutually inconsistent;
// the caller should treat this as fatal, not skip the record.
func Verify(records []Record, idx *taxonomy.Index) error {
	for _, rec := range records {
		if err := idx.VerifyTaxon(rec.Taxon); err != nil {
			return err
		}
	}
	return nil
}
