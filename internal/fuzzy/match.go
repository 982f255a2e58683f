package fuzzy

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Default thresholds used when callers have no field-specific value.
const (
	DefaultBestThreshold = 70
	DefaultAllThreshold  = 75
)

// Scores assigned by the matcher independent of edit distance.
const (
	// ContainsScore is the floor for a candidate that contains, or is
	// contained in, the normalized input.
	ContainsScore = 85

	// PhraseScore is assigned to a candidate found verbatim (after
	// normalization) inside the full text by FindAllMatches.
	PhraseScore = 95
)

// Match is a candidate accepted by the matcher.
type Match struct {
	// Value is the candidate string exactly as supplied, never the input text.
	Value string `json:"value"`

	// Confidence is the match score (0-100).
	Confidence int `json:"confidence"`
}

// tokenSplit separates OCR text into words for the token pass.
var tokenSplit = regexp.MustCompile(`[` + space + `,.]+`)

// FindBestMatch returns the candidate that best matches input.
//
// Input and candidates are compared after Normalize. An exact normalized
// match returns immediately with confidence 100, so the first exact candidate
// wins. Otherwise each candidate is scored with Similarity, and a candidate
// that contains the input (or is contained in it) scores at least
// ContainsScore. Ties keep the earliest candidate.
//
// Returns false when input is blank, candidates is empty, or the best score is
// below threshold.
func FindBestMatch(input string, candidates []string, threshold int) (Match, bool) {
	normInput := Normalize(input)
	if normInput == "" || len(candidates) == 0 {
		return Match{}, false
	}

	best := ""
	bestScore := 0
	found := false

	for _, candidate := range candidates {
		normCandidate := Normalize(candidate)
		if normCandidate == "" {
			continue
		}

		if normInput == normCandidate {
			return Match{Value: candidate, Confidence: 100}, true
		}

		score := Similarity(normInput, normCandidate)
		if strings.Contains(normInput, normCandidate) || strings.Contains(normCandidate, normInput) {
			score = max(score, ContainsScore)
		}

		if score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}

	if !found || bestScore < threshold {
		return Match{}, false
	}
	return Match{Value: best, Confidence: bestScore}, true
}

// FindAllMatches returns every candidate that appears in text.
//
// Matching runs in two passes:
//
//  1. Phrase pass: each candidate whose normalized form occurs inside the
//     normalized text is recorded with PhraseScore. This is what finds
//     multi-word entries such as "Loves Outdoors".
//  2. Token pass: text is split on whitespace, commas and periods, tokens of
//     two runes or fewer are dropped, and each token is assigned to the first
//     unused candidate whose Similarity reaches threshold.
//
// A candidate string is reported at most once. The result is sorted by
// descending confidence; equal confidences keep discovery order.
func FindAllMatches(text string, candidates []string, threshold int) []Match {
	if text == "" || len(candidates) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0)
	used := make(map[string]bool)

	normText := Normalize(text)
	for _, candidate := range candidates {
		if used[candidate] {
			continue
		}
		normCandidate := Normalize(candidate)
		if normCandidate == "" {
			continue
		}
		if strings.Contains(normText, normCandidate) {
			matches = append(matches, Match{Value: candidate, Confidence: PhraseScore})
			used[candidate] = true
		}
	}

	for _, token := range tokenize(text) {
		for _, candidate := range candidates {
			if used[candidate] {
				continue
			}
			score := Similarity(token, candidate)
			if score >= threshold {
				matches = append(matches, Match{Value: candidate, Confidence: score})
				used[candidate] = true
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})
	return matches
}

// tokenize splits text into words longer than two runes.
func tokenize(text string) []string {
	parts := tokenSplit.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if utf8.RuneCountInString(p) > 2 {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
