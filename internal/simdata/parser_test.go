package simdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/simaja-mcp/internal/vocab"
)

const englishPanel = "Maja Andersson\nAmbitious\nYoung Adult\n"

func TestParse_EnglishPanel(t *testing.T) {
	got := NewParser(nil).Parse(englishPanel)

	assert.Equal(t, FieldResult{Value: "Maja Andersson", Confidence: NameConfidence, Source: SourceOCR}, got.Name)
	assert.Equal(t, FieldResult{Value: "Ung vuxen", Confidence: 85, Source: SourceOCR}, got.Age)
	assert.Equal(t, []FieldResult{{Value: "Ambitiös", Confidence: 95, Source: SourceOCR}}, got.Traits)
	assert.False(t, got.Career.Found())
	assert.Empty(t, got.Skills)
	assert.Equal(t, englishPanel, got.RawText)
}

func TestParse_SourceOutputLanguage(t *testing.T) {
	p := NewParser(nil, WithOutputLanguage(vocab.Source))
	require.Equal(t, vocab.Source, p.OutputLanguage())

	got := p.Parse(englishPanel)

	assert.Equal(t, "Young Adult", got.Age.Value)
	assert.Equal(t, []string{"Ambitious"}, got.TraitValues())
}

func TestParse_SwedishPanel(t *testing.T) {
	got := NewParser(nil).Parse("Erik Svensson\nUng vuxen\nRomantisk\nKreativ\n")

	assert.Equal(t, "Erik Svensson", got.Name.Value)
	assert.Equal(t, "Ung vuxen", got.Age.Value)
	assert.ElementsMatch(t, []string{"Romantisk", "Kreativ"}, got.TraitValues())
	for _, tr := range got.Traits {
		assert.Equal(t, 95, tr.Confidence, tr.Value)
	}
}

func TestParse_Skills(t *testing.T) {
	got := NewParser(nil).Parse("Cooking: 7\nVampire Lore 12\nCooking 9")

	require.Len(t, got.Skills, 3)
	assert.Equal(t, SkillResult{Name: "Matlagning", Level: 7, Confidence: 100, Source: SourceOCR}, got.Skills[0])
	assert.Equal(t, SkillResult{Name: "Vampyrlära", Level: 12, Confidence: 100, Source: SourceOCR}, got.Skills[1])
	assert.Equal(t, map[string]int{"Matlagning": 9, "Vampyrlära": 12}, got.SkillLevels())
}

func TestParse_Blank(t *testing.T) {
	for _, raw := range []string{"", "   \n\t"} {
		got := NewParser(nil).Parse(raw)

		assert.False(t, got.Name.Found())
		assert.False(t, got.Age.Found())
		assert.Equal(t, 0, got.Age.Confidence)
		assert.NotNil(t, got.Traits)
		assert.NotNil(t, got.Skills)
		assert.Equal(t, raw, got.RawText)
	}
}

func TestParse_TraitsCappedAndUnique(t *testing.T) {
	got := NewParser(nil).Parse("Romantic Creative Gloomy Goofball Romantisk Kreativ")

	assert.LessOrEqual(t, len(got.Traits), MaxTraits)
	seen := map[string]bool{}
	for _, tr := range got.Traits {
		assert.False(t, seen[tr.Value], "duplicate trait %q", tr.Value)
		seen[tr.Value] = true
		assert.GreaterOrEqual(t, tr.Confidence, TraitThreshold)
	}
}

func TestParsedSimData_JSON(t *testing.T) {
	data, err := json.Marshal(NewParser(nil).Parse(""))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"name", "age", "traits", "aspiration", "career", "skills", "rawText"} {
		assert.Contains(t, fields, key)
	}
	assert.JSONEq(t, `[]`, string(fields["traits"]))
}
