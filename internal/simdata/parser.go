package simdata

import (
	"strings"

	"github.com/ironsheep/simaja-mcp/internal/fuzzy"
	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

// Minimum confidences per field.
const (
	AgeThreshold        = 80
	TraitThreshold      = 75
	AspirationThreshold = 70
	CareerThreshold     = 70
	SkillThreshold      = 70
)

const (
	// NameConfidence is assigned to every extracted name; the name heuristic
	// has no score of its own.
	NameConfidence = 80

	// MaxTraits is the number of traits a Sim can have.
	MaxTraits = 3
)

// Parser turns recognised text into ParsedSimData. It is immutable after
// construction and safe for concurrent use.
type Parser struct {
	vocab *vocab.Vocabulary
	lang  vocab.Language

	aspirations vocab.Table

	// Candidate pools, source labels then target labels.
	agePool        []string
	traitPool      []string
	aspirationPool []string
	careerPool     []string
	skillPool      []string
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithOutputLanguage selects the language of returned labels. The default
// is vocab.Target.
func WithOutputLanguage(lang vocab.Language) ParserOption {
	return func(p *Parser) {
		p.lang = lang
	}
}

// NewParser creates a parser over v. A nil v uses vocab.Default().
func NewParser(v *vocab.Vocabulary, opts ...ParserOption) *Parser {
	if v == nil {
		v = vocab.Default()
	}

	p := &Parser{
		vocab:       v,
		lang:        vocab.Target,
		aspirations: v.Aspirations.Flatten(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.agePool = v.Ages.Names()
	p.traitPool = v.Traits.Names()
	p.aspirationPool = p.aspirations.Names()
	p.careerPool = v.Careers.Names()
	p.skillPool = v.Skills.Names()
	return p
}

// OutputLanguage returns the language labels are reported in.
func (p *Parser) OutputLanguage() vocab.Language {
	return p.lang
}

// Parse extracts Sim attributes from raw OCR text.
//
// Blank text yields an empty result that still carries rawText. Fields that
// cannot be matched keep an empty value with confidence 0.
func (p *Parser) Parse(rawText string) *ParsedSimData {
	result := newParsedSimData(rawText)
	if strings.TrimSpace(rawText) == "" {
		return result
	}

	if name, ok := fuzzy.ExtractPotentialName(rawText); ok {
		result.Name = FieldResult{Value: name, Confidence: NameConfidence, Source: SourceOCR}
	}

	result.Age = p.bestField(rawText, p.agePool, AgeThreshold, p.vocab.Ages)
	result.Traits = p.traits(rawText)
	result.Aspiration = p.bestField(rawText, p.aspirationPool, AspirationThreshold, p.aspirations)
	result.Career = p.bestField(rawText, p.careerPool, CareerThreshold, p.vocab.Careers)
	result.Skills = p.skills(rawText)

	return result
}

func (p *Parser) bestField(text string, pool []string, threshold int, table vocab.Table) FieldResult {
	m, ok := fuzzy.FindBestMatch(text, pool, threshold)
	if !ok {
		return FieldResult{Source: SourceOCR}
	}
	return FieldResult{
		Value:      table.Localize(m.Value, p.lang),
		Confidence: m.Confidence,
		Source:     SourceOCR,
	}
}

// traits keeps the highest-confidence matches, one per translated label.
func (p *Parser) traits(text string) []FieldResult {
	out := make([]FieldResult, 0, MaxTraits)
	seen := make(map[string]bool)

	for _, m := range fuzzy.FindAllMatches(text, p.traitPool, TraitThreshold) {
		if len(out) >= MaxTraits {
			break
		}
		label := p.vocab.Traits.Localize(m.Value, p.lang)
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, FieldResult{Value: label, Confidence: m.Confidence, Source: SourceOCR})
	}
	return out
}

// skills reads one "label level" pair per line. Repeated skills are all
// reported.
func (p *Parser) skills(text string) []SkillResult {
	out := []SkillResult{}
	for _, line := range strings.Split(text, "\n") {
		sl, ok := fuzzy.ExtractSkillLevel(line)
		if !ok {
			continue
		}
		m, ok := fuzzy.FindBestMatch(sl.Name, p.skillPool, SkillThreshold)
		if !ok {
			continue
		}
		out = append(out, SkillResult{
			Name:       p.vocab.Skills.Localize(m.Value, p.lang),
			Level:      sl.Level,
			Confidence: m.Confidence,
			Source:     SourceOCR,
		})
	}
	return out
}
