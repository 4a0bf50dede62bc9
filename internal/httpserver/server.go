// internal/httpserver/server.go
//
// HTTP server wiring for the taxonomy quiz backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/dataset".
//   - Game endpoints under /api: question, guess, score (routes_question.go)
//     and options, hints, suggestions (routes_lookup.go).
//
// Notes:
//   - The server is stateless: sessions live in request/response bodies,
//     never in server memory or storage.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/animo-game/go-server/internal/dataset"
	"github.com/animo-game/go-server/internal/hints"
	"github.com/animo-game/go-server/internal/question"
	"github.com/animo-game/go-server/internal/suggest"
	"github.com/animo-game/go-server/internal/taxonomy"
)

// Difficulty knobs. Easy mode trims big option sets; expert mode shows
// everything and gets twice the hint candidates.
const (
	easyMaxOptions       = 6
	hintCandidatesNormal = 3
	hintCandidatesExpert = 6
)

// LeadImageFetcher looks up an article's lead image URL; satisfied by
// hints.WikiClient. Used as a fallback when a record has no photo.
type LeadImageFetcher interface {
	FetchLeadImage(ctx context.Context, title string) (string, error)
}

// Server bundles the router and the game services.
type Server struct {
	r        *chi.Mux
	taxa     *taxonomy.Index
	data     *dataset.Cache
	selector *question.Selector
	hints    *hints.Resolver
	suggest  *suggest.Service
	images   LeadImageFetcher // may be nil
}

// New constructs a Server, installs middleware, and registers routes.
// images may be nil; records without a photo URL are then served as-is.
func New(taxa *taxonomy.Index, data *dataset.Cache, selector *question.Selector,
	resolver *hints.Resolver, suggester *suggest.Service, images LeadImageFetcher) *Server {

	s := &Server{
		r:        chi.NewRouter(),
		taxa:     taxa,
		data:     data,
		selector: selector,
		hints:    resolver,
		suggest:  suggester,
		images:   images,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time (hint fan-out included)
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"animo-go","endpoints":["/health","GET /api/question","POST /api/guess","GET /api/options","GET /api/hints","GET /api/suggestions","POST /api/score"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: dataset size (cache-backed, so this also warms the cache)
	s.r.Get("/debug/dataset", func(w http.ResponseWriter, r *http.Request) {
		recs, err := s.data.Records(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "dataset_unavailable")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]int{"records": len(recs)})
	})

	// Game API
	s.r.Route("/api", func(r chi.Router) {
		r.Get("/question", s.handleQuestion)
		r.Post("/guess", s.handleGuess)
		r.Post("/score", s.handleScore)
		r.Get("/options", s.handleOptions)
		r.Post("/options/sample", s.handleSampleOptions)
		r.Get("/hints", s.handleHints)
		r.Get("/suggestions", s.handleSuggestions)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:3000.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard {"error": code} body with status.
func writeError(w http.ResponseWriter, status int, code string) {
	http.Error(w, `{"error":"`+code+`"}`, status)
}
