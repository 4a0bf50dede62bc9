package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animo-game/go-server/internal/dataset"
	"github.com/animo-game/go-server/internal/game"
	"github.com/animo-game/go-server/internal/hints"
	"github.com/animo-game/go-server/internal/httpserver"
	"github.com/animo-game/go-server/internal/question"
	"github.com/animo-game/go-server/internal/suggest"
	"github.com/animo-game/go-server/internal/taxonomy"
)

type staticSource struct{ recs []dataset.Record }

func (s staticSource) Load(ctx context.Context) ([]dataset.Record, error) { return s.recs, nil }

type stubFetcher struct{}

func (stubFetcher) FetchSummary(ctx context.Context, title string) (hints.Summary, error) {
	if title == "Canidae" {
		return hints.Summary{Extract: "Dogs and foxes.", CanonicalTitle: "Canidae"}, nil
	}
	return hints.Summary{}, hints.ErrNotFound
}

var fox = taxonomy.Taxon{
	ID: 101, ScientificName: "Vulpes vulpes",
	Kingdom: "Animalia", Phylum: "Chordata", Class: "Mammalia",
	Order: "Carnivora", Family: "Canidae", Genus: "Vulpes", Species: "Vulpes vulpes",
}

var robin = taxonomy.Taxon{
	ID: 102, ScientificName: "Turdus migratorius",
	Kingdom: "Animalia", Phylum: "Chordata", Class: "Aves",
	Order: "Passeriformes", Family: "Turdidae", Genus: "Turdus", Species: "Turdus migratorius",
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	taxa, err := taxonomy.Load("")
	require.NoError(t, err)

	recs := []dataset.Record{
		{Taxon: fox, Identifier: "https://example.com/fox.jpeg"},
		{Taxon: robin, Identifier: "https://example.com/robin.jpeg"},
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := dataset.NewCache(staticSource{recs}, 0, func() time.Time { return now })
	selector := question.NewSelector(cache, "test_salt", []string{"Didelphis"}, func() time.Time { return now })

	srv := httpserver.New(taxa, cache, selector,
		hints.NewResolver(stubFetcher{}), suggest.NewService(cache), nil)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func postJSON(t *testing.T, url string, body, out any) int {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

type questionRes struct {
	Taxon            taxonomy.Taxon `json:"taxon"`
	Identifier       string         `json:"identifier"`
	CurrentRank      string         `json:"currentRank"`
	AvailableOptions []string       `json:"availableOptions"`
	Session          *game.Session  `json:"session"`
}

func TestQuestionEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var got questionRes
	status := getJSON(t, ts.URL+"/api/question?mammals=true&seed=7", &got)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, fox.ID, got.Taxon.ID, "only mammal in the pool")
	assert.Equal(t, "https://example.com/fox.jpeg", got.Identifier)
	assert.Equal(t, "kingdom", got.CurrentRank)
	assert.ElementsMatch(t, taxonomy.Kingdoms, got.AvailableOptions)
	require.NotNil(t, got.Session)
	assert.Equal(t, 0, got.Session.RankIndex)
	assert.False(t, got.Session.Completed)
}

type stubImages struct{}

func (stubImages) FetchLeadImage(ctx context.Context, title string) (string, error) {
	return "https://upload.example/" + title + ".jpg", nil
}

func TestQuestionEndpoint_LeadImageFallback(t *testing.T) {
	taxa, err := taxonomy.Load("")
	require.NoError(t, err)

	// Record without a photo URL: the server asks the image fetcher.
	cache := dataset.NewCache(staticSource{[]dataset.Record{{Taxon: fox}}}, 0, nil)
	selector := question.NewSelector(cache, "test_salt", nil, nil)
	srv := httpserver.New(taxa, cache, selector,
		hints.NewResolver(stubFetcher{}), suggest.NewService(cache), stubImages{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	var got questionRes
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/question?mammals=true", &got))
	assert.Equal(t, "https://upload.example/Vulpes vulpes.jpg", got.Identifier)
}

func TestQuestionEndpoint_NoToggles(t *testing.T) {
	ts := newTestServer(t)
	status := getJSON(t, ts.URL+"/api/question?birds=false&mammals=false&reptiles=false", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestQuestionEndpoint_NoMatches(t *testing.T) {
	ts := newTestServer(t)
	// Reptiles enabled but the pool has none.
	status := getJSON(t, ts.URL+"/api/question?reptiles=true", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestQuestionEndpoint_SeedDeterminism(t *testing.T) {
	ts := newTestServer(t)

	var a, b questionRes
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/question?seed=3", &a))
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/question?seed=3", &b))
	assert.Equal(t, a.Taxon.ID, b.Taxon.ID)
}

func TestOptionsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var got map[string][]string
	status := getJSON(t, ts.URL+"/api/options?rank=kingdom", &got)
	require.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, taxonomy.Kingdoms, got["options"])

	status = getJSON(t, ts.URL+"/api/options?rank=class&parent=Chordata&expert=true", &got)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, got["options"], "Mammalia")

	status = getJSON(t, ts.URL+"/api/options?rank=suborder", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOptionsEndpoint_EasyModeDownsamples(t *testing.T) {
	ts := newTestServer(t)

	// Aves has 8 orders in the tables, above the easy-mode cap of 6.
	var got map[string][]string
	status := getJSON(t, ts.URL+"/api/options?rank=order&parent=Aves&correct=Passeriformes", &got)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, got["options"], 6)
	assert.Contains(t, got["options"], "Passeriformes")

	// Expert mode gets the full list.
	status = getJSON(t, ts.URL+"/api/options?rank=order&parent=Aves&correct=Passeriformes&expert=true", &got)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, got["options"], 8)
}

func TestSampleOptionsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var got map[string][]string
	status := postJSON(t, ts.URL+"/api/options/sample", map[string]any{
		"options": []string{"Canidae", "Felidae", "Mustelidae", "Ursidae", "Procyonidae"},
		"correct": "Canidae",
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, got["options"], 3, "hint candidate default for normal mode")
	assert.Contains(t, got["options"], "Canidae")

	// Correct answer missing from the set is a data-integrity failure.
	status = postJSON(t, ts.URL+"/api/options/sample", map[string]any{
		"options": []string{"Felidae"},
		"correct": "Canidae",
	}, nil)
	assert.Equal(t, http.StatusInternalServerError, status)
}

type guessRes struct {
	Result      game.Result   `json:"result"`
	Session     *game.Session `json:"session"`
	Score       int           `json:"score"`
	NextRank    string        `json:"nextRank"`
	NextOptions []string      `json:"nextOptions"`
}

func TestGuessEndpoint_AdvanceAndScore(t *testing.T) {
	ts := newTestServer(t)
	sess := game.NewSession(fox)

	// Wrong guess first: rank stays, mistake recorded, score 7.
	var res guessRes
	status := postJSON(t, ts.URL+"/api/guess", map[string]any{"session": sess, "guess": "Plantae"}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, res.Result.Correct)
	assert.Equal(t, 0, res.Session.RankIndex)
	assert.Equal(t, 7, res.Score)

	// Correct guess advances and returns phylum options.
	status = postJSON(t, ts.URL+"/api/guess", map[string]any{"session": res.Session, "guess": "animalia"}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Result.Correct)
	assert.Equal(t, 1, res.Session.RankIndex)
	assert.Equal(t, "phylum", res.NextRank)
	assert.Contains(t, res.NextOptions, "Chordata")
}

func TestGuessEndpoint_DirectSpeciesWin(t *testing.T) {
	ts := newTestServer(t)
	sess := game.NewSession(fox)

	var res guessRes
	status := postJSON(t, ts.URL+"/api/guess",
		map[string]any{"session": sess, "guess": "vulpes vulpes", "direct": true}, &res)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, res.Result.Correct)
	assert.True(t, res.Result.Direct)
	assert.True(t, res.Session.Completed)
	assert.Len(t, res.Session.Correct, 7)
	assert.Equal(t, 0, res.Score)

	// A guess against a completed session is rejected.
	status = postJSON(t, ts.URL+"/api/guess", map[string]any{"session": res.Session, "guess": "x"}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestScoreEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var got map[string]int
	status := postJSON(t, ts.URL+"/api/score", map[string]any{
		"incorrectGuesses": map[string][]string{"K": {"a", "b"}},
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 14, got["score"])

	status = postJSON(t, ts.URL+"/api/score", map[string]any{
		"incorrectGuesses": map[string][]string{},
	}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, got["score"])
}

func TestHintsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var got map[string]map[string]string
	status := getJSON(t, ts.URL+"/api/hints?names=Canidae,Felidae", &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Dogs and foxes.", got["hints"]["Canidae"])
	assert.Equal(t, "No information available for Felidae", got["hints"]["Felidae"])

	status = getJSON(t, ts.URL+"/api/hints", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSuggestionsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/api/suggestions?query=vulpes")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "public, max-age=60", res.Header.Get("Cache-Control"))

	var got map[string][]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.Equal(t, []string{"Vulpes vulpes"}, got["suggestions"])

	var short map[string][]string
	status := getJSON(t, ts.URL+"/api/suggestions?query=vu", &short)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, short["suggestions"])
}

func TestHealthAnd404(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/health", nil))
	assert.Equal(t, http.StatusNotFound, getJSON(t, ts.URL+"/nope", nil))
}
