package vocab

import (
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Table names accepted by Vocabulary.Table and Vocabulary.Options.
const (
	TableTraits      = "traits"
	TableAspirations = "aspirations"
	TableCareers     = "careers"
	TableSkills      = "skills"
	TableAges        = "ages"
)

// TableNames lists the tables in a stable order.
func TableNames() []string {
	return []string{TableTraits, TableAspirations, TableCareers, TableSkills, TableAges}
}

// Vocabulary groups the tables the parser matches against.
type Vocabulary struct {
	Traits      Table
	Aspirations CategoryTable
	Careers     Table
	Skills      Table
	Ages        Table
}

var builtin = &Vocabulary{
	Traits:      traits,
	Aspirations: aspirations,
	Careers:     careers,
	Skills:      skills,
	Ages:        ages,
}

// Default returns the built-in Sims 4 vocabulary. It is shared and must be
// treated as read-only.
func Default() *Vocabulary {
	return builtin
}

// Table returns a table by name. Aspirations are returned flattened.
func (v *Vocabulary) Table(name string) (Table, error) {
	switch strings.ToLower(name) {
	case TableTraits:
		return v.Traits, nil
	case TableAspirations:
		return v.Aspirations.Flatten(), nil
	case TableCareers:
		return v.Careers, nil
	case TableSkills:
		return v.Skills, nil
	case TableAges:
		return v.Ages, nil
	default:
		return nil, fmt.Errorf("unknown vocabulary table %q (valid: %s)", name, strings.Join(TableNames(), ", "))
	}
}

// Options returns the target labels of a table for a picker: duplicates
// removed and sorted in Swedish collation order, so Å, Ä and Ö sort after Z.
// Ages keep life-stage order.
func (v *Vocabulary) Options(name string) ([]string, error) {
	t, err := v.Table(name)
	if err != nil {
		return nil, err
	}

	labels := unique(t.Labels(Target))
	if strings.EqualFold(name, TableAges) {
		return labels, nil
	}
	sortSwedish(labels)
	return labels, nil
}

// OptionGroup is a named list of picker labels.
type OptionGroup struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
}

// AspirationOptions returns the target labels of each aspiration category.
// Categories and the labels within them keep display order.
func (v *Vocabulary) AspirationOptions() []OptionGroup {
	out := make([]OptionGroup, len(v.Aspirations))
	for i, cat := range v.Aspirations {
		out[i] = OptionGroup{Name: cat.Name, Labels: cat.Entries.Labels(Target)}
	}
	return out
}

// sortSwedish sorts in place. A collator is not safe for concurrent use, so
// one is built per call.
func sortSwedish(labels []string) {
	collate.New(language.Swedish).SortStrings(labels)
}

func unique(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
