package simdata

import (
	"strings"
	"unicode/utf8"
)

// Reasons reported by Validate. They are shown to the user as-is.
const (
	ReasonUnreadable = "Kunde inte läsa text från bilden"
	ReasonNoSimData  = "Kunde inte hitta Sim-data i bilden. Prova en screenshot av Simology-panelen."
)

const (
	minRawTextLength = 10
	minConfidence    = 50
)

// Validation is the verdict on a parse result.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// Validate decides whether parsed looks like it came from a Sim panel.
//
// A result is unreadable when its trimmed raw text is shorter than ten
// characters. Otherwise it needs at least one of: a name, age or aspiration
// with confidence above 50, or any trait at all.
func Validate(parsed *ParsedSimData) Validation {
	if parsed == nil || utf8.RuneCountInString(strings.TrimSpace(parsed.RawText)) < minRawTextLength {
		return Validation{Valid: false, Reason: ReasonUnreadable}
	}

	confident := func(f FieldResult) bool {
		return f.Found() && f.Confidence > minConfidence
	}

	if !confident(parsed.Name) && len(parsed.Traits) == 0 && !confident(parsed.Age) && !confident(parsed.Aspiration) {
		return Validation{Valid: false, Reason: ReasonNoSimData}
	}
	return Validation{Valid: true}
}
