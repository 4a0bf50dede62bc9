// internal/game/score.go
//
// Weighted mistake score. Pure function over the incorrect-guess history:
// kingdom mistakes weigh 7, species mistakes weigh 1, zero mistakes is a
// perfect 0. No upper bound, lower is better.

package game

import "github.com/animo-game/go-server/internal/taxonomy"

// Score converts the incorrect-guess history (rank letter → guesses) into
// the final score: Σ weight(rank) × mistakes(rank). Idempotent; safe to
// call on a live session at any point.
func Score(incorrect map[string][]string) int {
	total := 0
	for _, rank := range taxonomy.Ranks {
		total += rank.Weight() * len(incorrect[rank.Letter()])
	}
	return total
}
