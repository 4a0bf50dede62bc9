// internal/httpserver/routes_question.go
//
// Question-serving and guess-evaluation endpoints.
//   - GET  /api/question → pick today's record for the enabled classes and
//     return it with a fresh session and kingdom options.
//   - POST /api/guess    → evaluate one guess against a client-held session
//     and return the updated session, result, and next options.
//   - POST /api/score    → weighted mistake score for a guess history.
//
// No game state is stored server-side: the session rides in the request
// and response bodies (client-held transient state).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/animo-game/go-server/internal/game"
	"github.com/animo-game/go-server/internal/question"
	"github.com/animo-game/go-server/internal/taxonomy"
)

// -----------------------------------------------------------------------------
// GET /api/question

// questionRes is the payload for a newly served question.
type questionRes struct {
	Taxon               taxonomy.Taxon    `json:"taxon"`
	Identifier          string            `json:"identifier"` // image URL
	Date                string            `json:"date"`
	CurrentRank         taxonomy.Rank     `json:"currentRank"`
	AvailableOptions    []string          `json:"availableOptions"`
	KingdomDescriptions map[string]string `json:"kingdomDescriptions"`
	Session             *game.Session     `json:"session"`
}

// handleQuestion serves the question record for the enabled animal classes.
// Query params: birds, mammals, reptiles (bools; all default on when none
// are given), seed (optional int64 for "new question" requests).
func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := question.ClassFilter{Birds: true, Mammals: true, Reptiles: true}
	if q.Has("birds") || q.Has("mammals") || q.Has("reptiles") {
		filter = question.ClassFilter{
			Birds:    q.Get("birds") == "true" || q.Get("birds") == "1",
			Mammals:  q.Get("mammals") == "true" || q.Get("mammals") == "1",
			Reptiles: q.Get("reptiles") == "true" || q.Get("reptiles") == "1",
		}
	}

	var seed *int64
	if raw := q.Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_seed")
			return
		}
		seed = &v
	}

	rec, err := s.selector.Select(r.Context(), filter, seed)
	switch {
	case errors.Is(err, question.ErrNoAnimalTypesSelected):
		writeError(w, http.StatusBadRequest, "no_animal_types_selected")
		return
	case errors.Is(err, question.ErrNoMatchingRecords):
		writeError(w, http.StatusNotFound, "no_matching_records")
		return
	case err != nil:
		log.Error().Err(err).Msg("select question")
		writeError(w, http.StatusInternalServerError, "question_unavailable")
		return
	}

	opts, err := s.taxa.OptionsFor(taxonomy.RankKingdom, "")
	if err != nil {
		log.Error().Err(err).Msg("kingdom options")
		writeError(w, http.StatusInternalServerError, "options_unavailable")
		return
	}

	// Some observation rows carry no photo; fall back to the taxon's
	// encyclopedia lead image when we can get one.
	identifier := rec.Identifier
	if identifier == "" && s.images != nil {
		if url, err := s.images.FetchLeadImage(r.Context(), rec.ScientificName); err == nil {
			identifier = url
		}
	}

	writeJSON(w, questionRes{
		Taxon:               rec.Taxon,
		Identifier:          identifier,
		Date:                question.DateKey(s.selector.Now()),
		CurrentRank:         taxonomy.RankKingdom,
		AvailableOptions:    opts,
		KingdomDescriptions: taxonomy.KingdomDescriptions,
		Session:             game.NewSession(rec.Taxon),
	})
}

// -----------------------------------------------------------------------------
// POST /api/guess

// guessReq carries the client-held session plus one guess.
type guessReq struct {
	Session *game.Session `json:"session"`
	Guess   string        `json:"guess"`
	Direct  bool          `json:"direct"` // free-typed species guess
	Expert  bool          `json:"expert"` // full option lists, no downsampling
}

// guessRes returns the evaluated result and the session to hold next.
type guessRes struct {
	Result      game.Result   `json:"result"`
	Session     *game.Session `json:"session"`
	Score       int           `json:"score"`
	NextRank    taxonomy.Rank `json:"nextRank,omitempty"`
	NextOptions []string      `json:"nextOptions,omitempty"`
}

// handleGuess evaluates one guess. On a rank advance the response carries
// the next rank's options, downsampled unless expert mode is on.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Session == nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := req.Session
	if sess.Correct == nil {
		sess.Correct = make(map[string]string)
	}
	if sess.Incorrect == nil {
		sess.Incorrect = make(map[string][]string)
	}
	if sess.RankIndex < 0 || sess.RankIndex >= taxonomy.NumRanks {
		writeError(w, http.StatusBadRequest, "bad_rank_index")
		return
	}

	var (
		result game.Result
		err    error
	)
	if req.Direct {
		result, err = sess.DirectSpeciesGuess(req.Guess)
	} else {
		result, err = sess.Guess(req.Guess)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "game_completed")
		return
	}

	res := guessRes{Result: result, Session: sess, Score: game.Score(sess.Incorrect)}

	// On advance, hand the client the next rank's options so it doesn't
	// need a second round trip.
	if result.Correct && !sess.Completed {
		rank := sess.CurrentRank()
		parent := sess.Taxon.ValueAt(taxonomy.Ranks[rank.Index()-1])
		opts, err := s.optionsAt(rank, parent, sess.Taxon.ValueAt(rank), req.Expert)
		if err != nil {
			log.Error().Err(err).Int("taxon", sess.Taxon.ID).Str("rank", string(rank)).
				Msg("option set inconsistent with dataset")
			writeError(w, http.StatusInternalServerError, "options_inconsistent")
			return
		}
		res.NextRank = rank
		res.NextOptions = opts
	}

	writeJSON(w, res)
}

// -----------------------------------------------------------------------------
// POST /api/score

type scoreReq struct {
	IncorrectGuesses map[string][]string `json:"incorrectGuesses"`
}

// handleScore computes the weighted mistake score for a guess history.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	writeJSON(w, map[string]int{"score": game.Score(req.IncorrectGuesses)})
}
