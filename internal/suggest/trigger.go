// Package suggest detects "@name" and "!place" tokens as the user types and
// turns them into wikilinks to person and location notes.
package suggest

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aidanlsb/mentions/internal/index"
)

// ErrMalformedQuery is returned for trigger queries without a known
// "<Kind>_" tag.
var ErrMalformedQuery = errors.New("malformed trigger query")

// querySep separates the kind tag from the typed text: "Name_Jo".
const querySep = "_"

// markers are the characters that open a trigger.
const markers = string(index.NameMarker) + string(index.LocationMarker)

// Position is a zero-based line and byte column.
type Position struct {
	Line int
	Ch   int
}

// LineAccessor gives access to the text of a document line.
type LineAccessor interface {
	Line(n int) string
}

// Lines is a LineAccessor over a slice.
type Lines []string

// Line returns line n, or "" when out of range.
func (l Lines) Line(n int) string {
	if n < 0 || n >= len(l) {
		return ""
	}
	return l[n]
}

// SplitLines splits document content into Lines.
func SplitLines(content string) Lines {
	return Lines(strings.Split(content, "\n"))
}

// TriggerContext describes an active suggestion session: the span from the
// marker to the cursor and the tagged query.
type TriggerContext struct {
	Kind  index.Kind
	Start Position
	End   Position
	Query string
}

// Detect looks for a reference being typed on the cursor line.
//
// The nearer of the last '@' and the last '!' left of the cursor wins. The
// trigger is rejected when the text after the marker contains "]]" (the
// cursor sits behind a finished link) or when the marker does not start a
// token, i.e. is preceded by something other than whitespace.
func Detect(cursor Position, lines LineAccessor) (TriggerContext, bool) {
	line := lines.Line(cursor.Line)
	ch := cursor.Ch
	if ch < 0 {
		ch = 0
	}
	if ch > len(line) {
		ch = len(line)
	}
	left := line[:ch]

	at := strings.LastIndexAny(left, markers)
	if at < 0 {
		return TriggerContext{}, false
	}
	kind, _ := index.KindForMarker(left[at])

	text := left[at+1:]
	if strings.Contains(text, "]]") {
		return TriggerContext{}, false
	}
	if at > 0 {
		prev, _ := utf8.DecodeLastRuneInString(left[:at])
		if !unicode.IsSpace(prev) {
			return TriggerContext{}, false
		}
	}

	return TriggerContext{
		Kind:  kind,
		Start: Position{Line: cursor.Line, Ch: at},
		End:   Position{Line: cursor.Line, Ch: ch},
		Query: FormatQuery(kind, text),
	}, true
}

// FormatQuery builds the tagged query "<Kind>_<text>".
func FormatQuery(kind index.Kind, text string) string {
	return kind.String() + querySep + text
}

// ParseQuery splits a tagged query at the first separator. Everything after
// it is the typed text, underscores included.
func ParseQuery(q string) (index.Kind, string, error) {
	tag, text, ok := strings.Cut(q, querySep)
	if !ok {
		return 0, "", ErrMalformedQuery
	}
	switch tag {
	case index.KindName.String():
		return index.KindName, text, nil
	case index.KindLocation.String():
		return index.KindLocation, text, nil
	}
	return 0, "", ErrMalformedQuery
}
