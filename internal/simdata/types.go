package simdata

// Source records where a field value came from.
type Source string

const (
	// SourceOCR marks values read from a screenshot.
	SourceOCR Source = "ocr"
	// SourceManual marks values entered or corrected by the user.
	SourceManual Source = "manual"
)

// FieldResult is one extracted scalar field.
type FieldResult struct {
	Value      string `json:"value"`
	Confidence int    `json:"confidence"`
	Source     Source `json:"source"`
}

// Found reports whether the field holds a value.
func (f FieldResult) Found() bool {
	return f.Value != ""
}

// SkillResult is a skill and the level read next to it.
type SkillResult struct {
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Confidence int    `json:"confidence"`
	Source     Source `json:"source"`
}

// ParsedSimData is everything recognised in one screenshot.
type ParsedSimData struct {
	Name       FieldResult   `json:"name"`
	Age        FieldResult   `json:"age"`
	Traits     []FieldResult `json:"traits"`
	Aspiration FieldResult   `json:"aspiration"`
	Career     FieldResult   `json:"career"`
	Skills     []SkillResult `json:"skills"`
	RawText    string        `json:"rawText"`
}

// newParsedSimData returns a result with every field empty.
func newParsedSimData(rawText string) *ParsedSimData {
	empty := FieldResult{Source: SourceOCR}
	return &ParsedSimData{
		Name:       empty,
		Age:        empty,
		Traits:     []FieldResult{},
		Aspiration: empty,
		Career:     empty,
		Skills:     []SkillResult{},
		RawText:    rawText,
	}
}

// TraitValues returns the trait labels in order.
func (p *ParsedSimData) TraitValues() []string {
	out := make([]string, len(p.Traits))
	for i, t := range p.Traits {
		out[i] = t.Value
	}
	return out
}

// SkillLevels returns skill levels keyed by skill name. A skill read more
// than once keeps its highest level.
func (p *ParsedSimData) SkillLevels() map[string]int {
	out := make(map[string]int, len(p.Skills))
	for _, s := range p.Skills {
		if s.Level > out[s.Name] {
			out[s.Name] = s.Level
		}
	}
	return out
}
