package dataset_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animo-game/go-server/internal/dataset"
	"github.com/animo-game/go-server/internal/taxonomy"
)

const sampleCSV = `id,scientificName,taxonRank,kingdom,phylum,classs,order,family,genus,identifier
101,Vulpes vulpes,species,Animalia,Chordata,Mammalia,Carnivora,Canidae,Vulpes,https://example.com/fox.jpeg
102,Turdus migratorius,species,Animalia,Chordata,Aves,Passeriformes,Turdidae,Turdus,https://example.com/robin.jpeg
`

func TestParseCSV(t *testing.T) {
	recs, err := dataset.ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	fox := recs[0]
	assert.Equal(t, 101, fox.ID)
	assert.Equal(t, "Vulpes vulpes", fox.ScientificName)
	assert.Equal(t, "Mammalia", fox.Class)
	assert.Equal(t, "Vulpes vulpes", fox.Species, "species defaults to scientific name")
	assert.Equal(t, "https://example.com/fox.jpeg", fox.Identifier)
}

func TestParseCSV_PlainClassHeader(t *testing.T) {
	csv := strings.Replace(sampleCSV, "classs", "class", 1)
	recs, err := dataset.ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, "Mammalia", recs[0].Class)
}

func TestParseCSV_MissingColumn(t *testing.T) {
	_, err := dataset.ParseCSV(strings.NewReader("id,scientificName\n1,Mus musculus\n"))
	assert.Error(t, err)
}

func TestEmbeddedSource_ConsistentWithTables(t *testing.T) {
	recs, err := dataset.EmbeddedSource{}.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	idx, err := taxonomy.Load("")
	require.NoError(t, err)
	assert.NoError(t, dataset.Verify(recs, idx))
}

func TestVerify_Inconsistent(t *testing.T) {
	idx, err := taxonomy.Load("")
	require.NoError(t, err)

	recs := []dataset.Record{{Taxon: taxonomy.Taxon{
		ID: 1, ScientificName: "Vulpes vulpes",
		Kingdom: "Animalia", Phylum: "Chordata", Class: "Mammalia",
		Order: "Carnivora", Family: "Turdidae", // a bird family under a carnivore order
		Genus: "Vulpes", Species: "Vulpes vulpes",
	}}}
	assert.Error(t, dataset.Verify(recs, idx))
}
