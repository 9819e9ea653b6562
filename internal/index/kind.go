// Package index holds the in-memory person and location indexes.
//
// An index maps a display name to the vault-relative path of its note. Two
// indexes exist, one per Kind, and both are rebuilt wholesale from the
// current file list by Classify; nothing is ever patched incrementally.
package index

import "fmt"

// Kind identifies which index an entry belongs to.
type Kind int

const (
	// KindName is a person note: "@Freya.md".
	KindName Kind = iota
	// KindLocation is a location note: "!Oslo.md".
	KindLocation
)

// Markers.
const (
	NameMarker     = '@'
	LocationMarker = '!'
)

// String returns the tag used in trigger queries ("Name", "Location").
func (k Kind) String() string {
	switch k {
	case KindName:
		return "Name"
	case KindLocation:
		return "Location"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Marker returns the character that introduces a reference of this kind.
func (k Kind) Marker() byte {
	if k == KindLocation {
		return LocationMarker
	}
	return NameMarker
}

// Noun is the human word for the kind, used in CLI and tool output.
func (k Kind) Noun() string {
	if k == KindLocation {
		return "location"
	}
	return "person"
}

// KindForMarker maps a marker character back to its kind.
func KindForMarker(c byte) (Kind, bool) {
	switch c {
	case NameMarker:
		return KindName, true
	case LocationMarker:
		return KindLocation, true
	}
	return 0, false
}

// ParseKind accepts the query tag ("Name", "Location") as well as the
// friendlier CLI spellings ("person", "people", "location", "locations").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Name", "name", "person", "people":
		return KindName, nil
	case "Location", "location", "locations", "place":
		return KindLocation, nil
	}
	return 0, fmt.Errorf("unknown kind %q (expected person or location)", s)
}
