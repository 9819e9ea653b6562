package lsp

import (
	"sync"

	"github.com/aidanlsb/mentions/internal/suggest"
)

// Document is one open editor buffer. A Document is never mutated: every
// change installs a new one, so handlers can hold on to what they got.
type Document struct {
	URI     string
	Version int
	suggest.Lines
}

// DocumentManager tracks open documents by URI. Only full-text sync is
// supported.
type DocumentManager struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocumentManager() *DocumentManager {
	return &DocumentManager{docs: make(map[string]*Document)}
}

// Put stores the full text of a document, replacing any previous version.
func (dm *DocumentManager) Put(uri, text string, version int) {
	doc := &Document{URI: uri, Version: version, Lines: suggest.SplitLines(text)}
	dm.mu.Lock()
	dm.docs[uri] = doc
	dm.mu.Unlock()
}

func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	delete(dm.docs, uri)
	dm.mu.Unlock()
}

// Get returns the document for uri, or nil if it is not open.
func (dm *DocumentManager) Get(uri string) *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.docs[uri]
}
