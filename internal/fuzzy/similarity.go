package fuzzy

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Distance returns the Levenshtein edit distance between a and b.
//
// Insertions, deletions and substitutions each cost 1. The distance is
// computed over runes, so "Ä" counts as one character rather than two bytes.
// The strings are compared as given; no case folding or trimming happens here.
func Distance(a, b string) int {
	return matchr.Levenshtein(a, b)
}

// Similarity scores how alike two strings are on a 0-100 scale.
//
// Both strings are lower-cased and trimmed before comparison. The score is
//
//	round((1 - distance/maxLen) * 100)
//
// where maxLen is the rune length of the longer normalized string.
//
// Edge cases:
//   - Either input empty: 0
//   - Equal after lower-casing and trimming: 100 (distance is not computed)
//
// Similarity is symmetric: Similarity(a, b) == Similarity(b, a).
func Similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	s1 := strings.TrimSpace(strings.ToLower(a))
	s2 := strings.TrimSpace(strings.ToLower(b))
	if s1 == s2 {
		return 100
	}

	maxLen := utf8.RuneCountInString(s1)
	if n := utf8.RuneCountInString(s2); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 100
	}

	d := Distance(s1, s2)
	return int(math.Round((1 - float64(d)/float64(maxLen)) * 100))
}
