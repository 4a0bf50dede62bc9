// internal/game/types.go
//
// Core type definitions for the taxonomy guessing game.
// Defines:
//   - Session: client-held state for one question (never persisted server-side).
//   - Result: outcome of evaluating a single guess.

package game

import "github.com/animo-game/go-server/internal/taxonomy"

// Session holds the progress of one game. It travels to the client with
// the question and comes back with each guess; the server holds nothing.
// Correct and Incorrect are keyed by rank letter (K P C O F G S).
type Session struct {
	Taxon     taxonomy.Taxon      `json:"taxon"`
	RankIndex int                 `json:"rankIndex"`        // 0..6, current rank being guessed
	Correct   map[string]string   `json:"correctGuesses"`   // rank letter → accepted value (true casing)
	Incorrect map[string][]string `json:"incorrectGuesses"` // rank letter → rejected guesses, append-only
	Completed bool                `json:"completed"`
}

// Result describes what one guess did to the session.
type Result struct {
	Correct   bool          `json:"correct"`
	Rank      taxonomy.Rank `json:"rank"`      // rank the guess was evaluated against
	Direct    bool          `json:"direct"`    // true when a direct species guess won
	Completed bool          `json:"completed"` // game finished by this guess
}
