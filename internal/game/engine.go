// internal/game/engine.go
//
// State machine for a single game session.
// Responsibilities:
//   - Create sessions positioned at rank 0 (kingdom) for a loaded Taxon.
//   - Evaluate guesses case-insensitively against the current rank and
//     advance through the seven ranks to completion.
//   - Handle the direct species guess: a correct species typed at any rank
//     wins the whole game; a wrong one is charged to the species bucket and
//     then still evaluated against the current rank.
//
// Notes:
//   - Accepted values are stored with the taxon's original casing, not the
//     literal typed string.
//   - There is no retry limit; wrong guesses only accumulate history.

package game

import (
	"errors"
	"strings"

	"github.com/animo-game/go-server/internal/taxonomy"
)

// ErrCompleted is returned when a guess arrives after the game finished.
var ErrCompleted = errors.New("game: session already completed")

// NewSession starts a fresh session for t, at rank 0 ("kingdom").
func NewSession(t taxonomy.Taxon) *Session {
	return &Session{
		Taxon:     t,
		RankIndex: 0,
		Correct:   make(map[string]string, taxonomy.NumRanks),
		Incorrect: make(map[string][]string),
	}
}

// CurrentRank returns the rank the session is currently guessing at.
func (s *Session) CurrentRank() taxonomy.Rank {
	return taxonomy.Ranks[s.RankIndex]
}

// Guess evaluates option against the current rank.
//
// Match (case-insensitive): the true value is recorded as accepted; the
// session advances to the next rank, or completes if this was species.
// Mismatch: option is appended to the current rank's incorrect history and
// the rank stays put. Any string is a legal guess.
func (s *Session) Guess(option string) (Result, error) {
	if s.Completed {
		return Result{}, ErrCompleted
	}
	rank := s.CurrentRank()
	truth := s.Taxon.ValueAt(rank)

	if !strings.EqualFold(strings.TrimSpace(option), truth) {
		s.Incorrect[rank.Letter()] = append(s.Incorrect[rank.Letter()], option)
		return Result{Correct: false, Rank: rank}, nil
	}

	s.Correct[rank.Letter()] = truth
	if s.RankIndex == taxonomy.NumRanks-1 {
		s.Completed = true
	} else {
		s.RankIndex++
	}
	return Result{Correct: true, Rank: rank, Completed: s.Completed}, nil
}

// DirectSpeciesGuess evaluates a free-typed species name from any rank.
//
// On a match, all seven ranks are marked correct with their true values
// and the game completes immediately. On a mismatch, the attempt is
// charged to the species bucket and then falls through to a normal guess:
// a wrong species can still happen to name the current coarser rank, and
// a typed guess is deliberately dual-purpose.
func (s *Session) DirectSpeciesGuess(option string) (Result, error) {
	if s.Completed {
		return Result{}, ErrCompleted
	}
	if s.RankIndex == taxonomy.NumRanks-1 {
		// Already at species; this is just a normal guess.
		return s.Guess(option)
	}

	if strings.EqualFold(strings.TrimSpace(option), s.Taxon.Species) {
		for _, rank := range taxonomy.Ranks {
			s.Correct[rank.Letter()] = s.Taxon.ValueAt(rank)
		}
		s.RankIndex = taxonomy.NumRanks - 1
		s.Completed = true
		return Result{Correct: true, Rank: taxonomy.RankSpecies, Direct: true, Completed: true}, nil
	}

	s.Incorrect[taxonomy.RankSpecies.Letter()] = append(
		s.Incorrect[taxonomy.RankSpecies.Letter()], option)
	return s.Guess(option)
}
