// Package wikilink formats and scans wikilinks.
//
// Wikilink grammar:
//
//	[[target]]
//	[[target|display text]]
//
// Mentions are written as "[[_people/@Freya.md|@Freya]]": the target is the
// vault-relative note path, the display text repeats the typed token.
package wikilink

import (
	"regexp"
	"strings"
)

// Match represents a wikilink found in a string (typically a single line).
type Match struct {
	Target      string
	DisplayText *string
	Start       int
	End         int
	Literal     string
}

// re matches [[target]] or [[target|display]].
// The target cannot contain [ or ] to avoid matching array syntax like [[[ref]]].
var re = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// Format builds "[[target|display]]", or "[[target]]" when display is empty.
func Format(target, display string) string {
	if display == "" {
		return "[[" + target + "]]"
	}
	return "[[" + target + "|" + display + "]]"
}

// FindAllInLine finds wikilinks in a single line.
func FindAllInLine(line string) []Match {
	var out []Match

	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		start, end := m[0], m[1]

		target := strings.TrimSpace(line[m[2]:m[3]])
		if target == "" {
			continue
		}

		var display *string
		if m[4] >= 0 && m[5] >= 0 {
			d := strings.TrimSpace(line[m[4]:m[5]])
			display = &d
		}

		out = append(out, Match{
			Target:      target,
			DisplayText: display,
			Start:       start,
			End:         end,
			Literal:     line[start:end],
		})
	}

	return out
}

// At returns the wikilink covering byte column col, if any. A column on
// the closing "]]" still counts as inside the link.
func At(line string, col int) (Match, bool) {
	for _, m := range FindAllInLine(line) {
		if col >= m.Start && col <= m.End {
			return m, true
		}
	}
	return Match{}, false
}
