package index

import "sync"

// Snapshot is a consistent view of both indexes as of one rebuild.
type Snapshot struct {
	People     *Mapping
	Locations  *Mapping
	Generation uint64
}

// For returns the mapping for kind.
func (s Snapshot) For(kind Kind) *Mapping {
	if kind == KindLocation {
		return s.Locations
	}
	return s.People
}

// Store owns the current indexes.
//
// There is one writer (the maintainer, via Install) and any number of
// readers. Install swaps both mappings at once, so a reader never sees the
// people index from one rebuild next to the locations index of another.
type Store struct {
	mu        sync.RWMutex
	people    *Mapping
	locations *Mapping
	gen       uint64
}

// NewStore returns a store holding two empty indexes.
func NewStore() *Store {
	return &Store{people: NewMapping(), locations: NewMapping()}
}

// Install replaces both indexes with the result of a rebuild.
func (s *Store) Install(r Result) Snapshot {
	if r.People == nil {
		r.People = NewMapping()
	}
	if r.Locations == nil {
		r.Locations = NewMapping()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = r.People
	s.locations = r.Locations
	s.gen++
	return Snapshot{People: s.people, Locations: s.locations, Generation: s.gen}
}

// Snapshot returns the current indexes.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{People: s.people, Locations: s.locations, Generation: s.gen}
}

// Lookup returns the entries of kind whose names start with prefix.
func (s *Store) Lookup(kind Kind, prefix string) []Entry {
	return s.Snapshot().For(kind).WithPrefix(prefix)
}
