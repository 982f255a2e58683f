package vocab

import (
	"fmt"
	"strings"
)

// Language selects one side of a bilingual entry.
type Language int

const (
	// Source is the language the game is played in (English).
	Source Language = iota
	// Target is the language results are presented in (Swedish).
	Target
)

// String returns "source" or "target".
func (l Language) String() string {
	if l == Source {
		return "source"
	}
	return "target"
}

// ParseLanguage accepts "source"/"en" and "target"/"sv".
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "source", "en":
		return Source, nil
	case "target", "sv", "":
		return Target, nil
	default:
		return Target, fmt.Errorf("unknown language %q (want source or target)", s)
	}
}

// Entry pairs a source label with its target-language label.
type Entry struct {
	Source string `json:"source"`
	Target string `json:"target"`

	// MaxLevel is set for skills only.
	MaxLevel int `json:"maxLevel,omitempty"`
}

// Label returns the entry's label in lang.
func (e Entry) Label(lang Language) string {
	if lang == Source {
		return e.Source
	}
	return e.Target
}

// Table is an ordered vocabulary. Order is significant: lookups and the
// matcher both resolve ties in favour of the earlier entry.
type Table []Entry

// Lookup finds the first entry whose source label equals label, ignoring
// case.
func (t Table) Lookup(label string) (Entry, bool) {
	for _, e := range t {
		if strings.EqualFold(e.Source, label) {
			return e, true
		}
	}
	return Entry{}, false
}

// lookupTarget finds the first entry whose target label equals label,
// ignoring case.
func (t Table) lookupTarget(label string) (Entry, bool) {
	for _, e := range t {
		if strings.EqualFold(e.Target, label) {
			return e, true
		}
	}
	return Entry{}, false
}

// Translate returns the target label paired with a source label. Unknown
// labels are returned unchanged so unmatched text is never dropped.
func (t Table) Translate(label string) string {
	if e, ok := t.Lookup(label); ok {
		return e.Target
	}
	return label
}

// ToSource is the reverse of Translate. Unknown labels are returned unchanged.
func (t Table) ToSource(label string) string {
	if e, ok := t.lookupTarget(label); ok {
		return e.Source
	}
	return label
}

// Localize translates label, in either language, into lang.
func (t Table) Localize(label string, lang Language) string {
	if lang == Source {
		return t.ToSource(label)
	}
	return t.Translate(label)
}

// Labels returns every label of one language in table order.
func (t Table) Labels(lang Language) []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Label(lang)
	}
	return out
}

// Names returns all source labels followed by all target labels. This is
// the candidate pool for matching OCR text written in either language.
func (t Table) Names() []string {
	return append(t.Labels(Source), t.Labels(Target)...)
}

// Duplicates reports source labels that occur more than once, ignoring case,
// in order of first occurrence.
func (t Table) Duplicates() []string {
	seen := make(map[string]int, len(t))
	var dups []string
	for _, e := range t {
		key := strings.ToLower(e.Source)
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, e.Source)
		}
	}
	return dups
}

// Category is a named group of entries.
type Category struct {
	Name    string `json:"name"`
	Entries Table  `json:"entries"`
}

// CategoryTable is a two-level vocabulary. Category order is display order
// only; matching works on the flattened entries.
type CategoryTable []Category

// Flatten returns every entry in category order.
func (c CategoryTable) Flatten() Table {
	var out Table
	for _, cat := range c {
		out = append(out, cat.Entries...)
	}
	return out
}

// Translate searches the categories in order and returns the first hit.
func (c CategoryTable) Translate(label string) string {
	return c.Flatten().Translate(label)
}

// ToSource is the reverse of Translate.
func (c CategoryTable) ToSource(label string) string {
	return c.Flatten().ToSource(label)
}

// Names returns the bilingual candidate pool over all categories.
func (c CategoryTable) Names() []string {
	return c.Flatten().Names()
}

// Category returns the name of the category holding a source or target label.
func (c CategoryTable) Category(label string) (string, bool) {
	for _, cat := range c {
		if _, ok := cat.Entries.Lookup(label); ok {
			return cat.Name, true
		}
		if _, ok := cat.Entries.lookupTarget(label); ok {
			return cat.Name, true
		}
	}
	return "", false
}
