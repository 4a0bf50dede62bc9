// internal/dataset/sqlite.go
//
// SQLite-backed record source, for deployments where the observation
// export is distributed as a database file rather than CSV.
// Opens read-only with a busy timeout; expects an `observations` table
// with the same columns as the CSV export.

package dataset

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/animo-game/go-server/internal/taxonomy"
)

// SQLiteSource reads observation records from a SQLite file.
type SQLiteSource struct{ Path string }

// Load opens the database, reads all observation rows, and closes it.
// The dataset is read-only for the process lifetime, so no connection is
// kept open between reloads.
func (s SQLiteSource) Load(ctx context.Context) ([]Record, error) {
	db, err := sql.Open("sqlite3", s.Path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("dataset: open sqlite %s: %w", s.Path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, scientificName, taxonRank, kingdom, phylum, classs, "order", family, genus, identifier
		 FROM observations`)
	if err != nil {
		return nil, fmt.Errorf("dataset: query observations: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var tx taxonomy.Taxon
		if err := rows.Scan(&tx.ID, &tx.ScientificName, &rec.TaxonRank,
			&tx.Kingdom, &tx.Phylum, &tx.Class, &tx.Order, &tx.Family, &tx.Genus,
			&rec.Identifier); err != nil {
			return nil, fmt.Errorf("dataset: scan observation: %w", err)
		}
		tx.Species = tx.ScientificName
		rec.Taxon = tx
		out = append(out, rec)
	}
	return out, rows.Err()
}
