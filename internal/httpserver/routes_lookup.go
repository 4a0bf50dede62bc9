// internal/httpserver/routes_lookup.go
//
// Lookup endpoints backing the answer grid, the hint box, and the
// free-text species field.
//   - GET  /api/options        → valid options at a rank for a parent taxon.
//   - POST /api/options/sample → random subset guaranteed to include the
//     correct answer (easy-mode grids, hint candidate sets).
//   - GET  /api/hints          → encyclopedia extracts for candidate taxa.
//   - GET  /api/suggestions    → species-name typing suggestions.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/animo-game/go-server/internal/taxonomy"
)

// optionsAt returns the option list at rank under parent, trimmed to
// easyMaxOptions (correct answer preserved) unless expert mode is on.
func (s *Server) optionsAt(rank taxonomy.Rank, parent, correct string, expert bool) ([]string, error) {
	opts, err := s.taxa.OptionsFor(rank, parent)
	if err != nil {
		return nil, err
	}
	if expert || correct == "" || len(opts) <= easyMaxOptions {
		return opts, nil
	}
	return taxonomy.Sample(opts, correct, easyMaxOptions)
}

// -----------------------------------------------------------------------------
// GET /api/options

// handleOptions serves the option list for one rank.
// Query params: rank (required), parent, expert (bool), correct (enables
// easy-mode downsampling; the full list is returned without it).
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rank, err := taxonomy.ParseRank(q.Get("rank"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_rank")
		return
	}
	expert := q.Get("expert") == "true" || q.Get("expert") == "1"

	opts, err := s.optionsAt(rank, q.Get("parent"), q.Get("correct"), expert)
	if err != nil {
		// Correct answer missing from its own option list: the static
		// inputs are inconsistent. Fail loudly, never silently default.
		log.Error().Err(err).Str("rank", string(rank)).Msg("option set inconsistent")
		writeError(w, http.StatusInternalServerError, "options_inconsistent")
		return
	}
	writeJSON(w, map[string][]string{"options": opts})
}

// -----------------------------------------------------------------------------
// POST /api/options/sample

// sampleReq asks for a random subset of an option list. Count 0 picks the
// hint-candidate default for the mode (3 normal, 6 expert).
type sampleReq struct {
	Options []string `json:"options"`
	Correct string   `json:"correct"`
	Count   int      `json:"count"`
	Expert  bool     `json:"expert"`
}

// handleSampleOptions returns a shuffled subset always containing the
// correct answer. Used for easy-mode grids and hint candidate sets.
func (s *Server) handleSampleOptions(w http.ResponseWriter, r *http.Request) {
	var req sampleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	count := req.Count
	if count == 0 {
		count = hintCandidatesNormal
		if req.Expert {
			count = hintCandidatesExpert
		}
	}
	got, err := taxonomy.Sample(req.Options, req.Correct, count)
	if err != nil {
		log.Error().Err(err).Msg("sample options")
		writeError(w, http.StatusInternalServerError, "options_inconsistent")
		return
	}
	writeJSON(w, map[string][]string{"options": got})
}

// -----------------------------------------------------------------------------
// GET /api/hints

// handleHints resolves encyclopedia extracts for a comma-separated list of
// candidate names. Lookups run concurrently; individual failures come back
// as placeholder text, never as a batch error.
func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("names")
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		writeError(w, http.StatusBadRequest, "no_names")
		return
	}
	writeJSON(w, map[string]map[string]string{"hints": s.hints.Resolve(r.Context(), names)})
}

// -----------------------------------------------------------------------------
// GET /api/suggestions

// handleSuggestions serves species-name suggestions for the typing field.
// Short queries yield an empty list. Responses are briefly browser-cacheable.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	matches, err := s.suggest.Suggestions(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		log.Error().Err(err).Msg("typing suggestions")
		writeError(w, http.StatusInternalServerError, "suggestions_unavailable")
		return
	}
	if matches == nil {
		matches = []string{}
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	writeJSON(w, map[string][]string{"suggestions": matches})
}
