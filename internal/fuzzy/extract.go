package fuzzy

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Skill levels outside this range are treated as misreads.
const (
	MinSkillLevel = 1
	MaxSkillLevel = 15
)

// space matches inside a character class what JavaScript's \s matches: ASCII
// whitespace, Unicode space separators such as U+00A0, the line and
// paragraph separators and the byte order mark.
const space = `\s\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	numericLine = regexp.MustCompile(`^\d+$`)
	nameLine    = regexp.MustCompile(`^[A-ZÅÄÖ][a-zåäöA-ZÅÄÖ` + space + `\-']+$`)
	skillLine   = regexp.MustCompile(`(?i)([A-Za-zåäöÅÄÖ` + space + `]+)[:` + space + `]+(\d{1,2})`)

	nameCleanup = strings.NewReplacer("|", "l", "1", "l", "0", "o")
)

// SkillLevel is a skill label and level read from a single line of text.
type SkillLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// ExtractPotentialName returns the first line of text that looks like a
// Sim's name.
//
// Lines are trimmed and empty lines dropped. A line qualifies when it is not
// purely numeric, is 2 to 50 runes long, starts with an uppercase letter
// (Å, Ä and Ö included) and otherwise holds only letters, spaces, hyphens and
// apostrophes. The accepted line has "|" and "1" replaced with "l" and "0"
// with "o".
func ExtractPotentialName(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || numericLine.MatchString(line) {
			continue
		}
		if n := utf8.RuneCountInString(line); n < 2 || n > 50 {
			continue
		}
		if !nameLine.MatchString(line) {
			continue
		}

		cleaned := strings.TrimSpace(nameCleanup.Replace(line))
		if utf8.RuneCountInString(cleaned) >= 2 {
			return cleaned, true
		}
	}
	return "", false
}

// ExtractSkillLevel reads a "Label: N" or "Label N" pair from one line.
//
// The label may contain letters (Å, Ä, Ö included) and spaces and must be
// longer than two runes once trimmed. The level is one or two digits and must
// fall within [MinSkillLevel, MaxSkillLevel]. Multi-line input is not split;
// callers pass one line at a time.
func ExtractSkillLevel(line string) (SkillLevel, bool) {
	m := skillLine.FindStringSubmatch(line)
	if m == nil {
		return SkillLevel{}, false
	}

	name := strings.TrimSpace(m[1])
	level, err := strconv.Atoi(m[2])
	if err != nil {
		return SkillLevel{}, false
	}

	if level < MinSkillLevel || level > MaxSkillLevel || utf8.RuneCountInString(name) <= 2 {
		return SkillLevel{}, false
	}
	return SkillLevel{Name: name, Level: level}, true
}
