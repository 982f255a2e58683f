package fuzzy

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ocrRewrites collapses glyphs that OCR engines confuse with each other.
// Applied top to bottom, each across the whole string.
var ocrRewrites = [][2]string{
	{"1", "l"},
	{"0", "o"},
	{"5", "s"},
	{"rn", "m"},
}

// Normalize prepares text for fuzzy comparison.
//
// The text is composed to NFC (so a decomposed "a" + ring matches "å"),
// lower-cased and trimmed, then each OCR rewrite is applied globally:
//
//	"1" -> "l", "0" -> "o", "5" -> "s", "rn" -> "m"
//
// The rewrites are lossy and one-directional. Use the result only as a
// comparison key, never as display text.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.TrimSpace(strings.ToLower(norm.NFC.String(text)))
	for _, rw := range ocrRewrites {
		s = strings.ReplaceAll(s, rw[0], rw[1])
	}
	return s
}
