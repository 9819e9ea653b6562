package index

import "strings"

const noteExt = ".md"

// Result is the output of one classification pass.
type Result struct {
	People    *Mapping
	Locations *Mapping
}

// For returns the mapping for kind.
func (r Result) For(kind Kind) *Mapping {
	if kind == KindLocation {
		return r.Locations
	}
	return r.People
}

// Classify partitions vault-relative paths into person and location notes.
//
// A path is a person note when its final segment is "@<name>.md" and a
// location note when it is "!<name>.md". The segment must sit below a
// folder ("_people/@Freya.md", not "@Freya.md"). The name runs up to the
// last ".md", so "@a.b.md" is named "a.b". Paths matching neither pattern
// are ignored; a duplicate name keeps the last path seen.
func Classify(paths []string) Result {
	r := Result{People: NewMapping(), Locations: NewMapping()}
	for _, p := range paths {
		if name, ok := matchSegment(p, NameMarker); ok {
			r.People.Set(name, p)
		} else if name, ok := matchSegment(p, LocationMarker); ok {
			r.Locations.Set(name, p)
		}
	}
	return r
}

// Match reports which index a single path would land in.
func Match(path string) (Kind, string, bool) {
	if name, ok := matchSegment(path, NameMarker); ok {
		return KindName, name, true
	}
	if name, ok := matchSegment(path, LocationMarker); ok {
		return KindLocation, name, true
	}
	return 0, "", false
}

func matchSegment(path string, marker byte) (string, bool) {
	slash := strings.LastIndexByte(path, '/')
	if slash < 0 {
		return "", false
	}
	seg := path[slash+1:]
	if len(seg) == 0 || seg[0] != marker || !strings.HasSuffix(seg, noteExt) {
		return "", false
	}
	name := seg[1 : len(seg)-len(noteExt)]
	if name == "" {
		return "", false
	}
	return name, true
}
