package index

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/text/unicode/norm"
)

// Entry is one indexed note.
type Entry struct {
	Name string
	Path string
}

// Mapping maps display names to note paths.
//
// Iteration follows first-insertion order. Setting an existing name replaces
// its path but keeps its position. A Mapping is built once by Classify and
// treated as read-only afterwards, so it can be shared between goroutines.
type Mapping struct {
	entries []Entry
	// trie maps NFC name -> position in entries; raw maps the name as
	// spelled in the filename.
	trie *patricia.Trie
	raw  *patricia.Trie
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{trie: patricia.NewTrie(), raw: patricia.NewTrie()}
}

// NormalizeName puts a display name into the form used for trie keys.
// Entries keep the name exactly as it appears in the filename.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// Set records name -> path. Later writes for the same name win, where
// names that differ only in Unicode normalization count as the same name.
func (m *Mapping) Set(name, path string) {
	key := patricia.Prefix(NormalizeName(name))
	if item := m.trie.Get(key); item != nil {
		pos := item.(int)
		m.raw.Delete(patricia.Prefix(m.entries[pos].Name))
		m.raw.Set(patricia.Prefix(name), pos)
		m.entries[pos] = Entry{Name: name, Path: path}
		return
	}
	m.trie.Insert(key, len(m.entries))
	m.raw.Insert(patricia.Prefix(name), len(m.entries))
	m.entries = append(m.entries, Entry{Name: name, Path: path})
}

// Get returns the path for an exact name.
func (m *Mapping) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	item := m.trie.Get(patricia.Prefix(NormalizeName(name)))
	if item == nil {
		return "", false
	}
	return m.entries[item.(int)].Path, true
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of all entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// WithPrefix returns the entries whose name starts with prefix, compared
// case-sensitively, in insertion order. An empty prefix matches everything.
// A name matches when either its filename spelling or its NFC form starts
// with prefix.
func (m *Mapping) WithPrefix(prefix string) []Entry {
	if m == nil {
		return nil
	}
	if prefix == "" {
		return m.Entries()
	}

	seen := make(map[int]bool)
	var positions []int
	visit := func(_ patricia.Prefix, item patricia.Item) error {
		if pos := item.(int); !seen[pos] {
			seen[pos] = true
			positions = append(positions, pos)
		}
		return nil
	}
	_ = m.raw.VisitSubtree(patricia.Prefix(prefix), visit)
	_ = m.trie.VisitSubtree(patricia.Prefix(NormalizeName(prefix)), visit)
	sort.Ints(positions)

	out := make([]Entry, 0, len(positions))
	for _, pos := range positions {
		out = append(out, m.entries[pos])
	}
	return out
}
