// internal/question/daily.go
//
// Deterministic daily permutation of the question pool.
// All players share one shuffle per UTC day: the shuffle is keyed by
// HMAC(salt, days-since-epoch), so it is stable within a day and changes
// at midnight. Not cryptographic — only per-day determinism and rough
// uniformity matter here.

package question

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"strconv"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC, for logging and responses.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// daysSinceEpoch returns the UTC day number of t.
func daysSinceEpoch(t time.Time) int64 {
	return t.UTC().Unix() / 86400
}

// minutesSinceEpoch returns the UTC minute number of t.
func minutesSinceEpoch(t time.Time) int64 {
	return t.UTC().Unix() / 60
}

// dailyPermutation returns a permutation of [0, n) seeded from the day
// number and salt. The same (day, salt, n) always yields the same
// permutation.
func dailyPermutation(day int64, salt string, n int) []int {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strconv.FormatInt(day, 10)))
	sum := h.Sum(nil)
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return rand.New(rand.NewSource(seed)).Perm(n)
}
