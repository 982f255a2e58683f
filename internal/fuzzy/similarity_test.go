package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"ambitious", "ambitiös", 2},
		{"Å", "A", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "Cooking", "Cooking", 100},
		{"case and whitespace", "  COOKING ", "cooking", 100},
		{"empty left", "", "cooking", 0},
		{"empty right", "cooking", "", 0},
		{"classic", "kitten", "sitting", 57},
		{"one typo", "ambitous", "ambitious", 89},
		{"completely different", "abc", "xyz", 0},
		{"whitespace only both", "  ", " ", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Similarity(tt.a, tt.b))
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Gloomy", "Glomy"},
		{"Young Adult", "Ung vuxen"},
		{"Självsäker", "Self-Assured"},
		{"", "x"},
		{"Bookworm", "B00kw0rm"},
	}

	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %q", p)
	}
}

func TestSimilarity_SelfIsHundred(t *testing.T) {
	for _, s := range []string{"a", "Maja", "Älskar kyla", "DJ Mixing"} {
		assert.Equal(t, 100, Similarity(s, s), s)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  Cooking  ", "cooking"},
		{"G00fba11", "goofball"},
		{"5nob", "snob"},
		{"Charrner", "charmer"},
		{"1oner", "loner"},
		{"a\u030adalen", "\u00e5dalen"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
