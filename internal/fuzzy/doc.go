// Package fuzzy turns noisy OCR text into vocabulary matches.
//
// The package is made of four small pieces that build on each other:
//
//   - Similarity: a 0-100 score derived from the Levenshtein edit distance
//   - Normalize: collapses glyphs Tesseract commonly confuses ("1"/"l",
//     "0"/"o", "5"/"s", "rn"/"m") before comparison
//   - FindBestMatch / FindAllMatches: pick candidates out of a vocabulary
//   - ExtractPotentialName / ExtractSkillLevel: shape-based heuristics for
//     fields that are not vocabulary lookups
//
// # Confidence Scores
//
// Every score is an integer in [0, 100]. It is a heuristic measure of match
// quality, not a probability. 100 means the normalized strings are equal.
//
// # Ordering
//
// Candidate order is part of the contract. When two candidates reach the same
// score the one that appears first in the slice wins, and FindAllMatches
// assigns tokens to the first candidate that clears the threshold. Callers that
// need deterministic output must pass candidates in a fixed order.
//
// # Concurrency
//
// All functions are pure. They hold no package state besides compiled
// regular expressions and may be called from any number of goroutines.
package fuzzy
