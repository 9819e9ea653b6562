package lsp

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aidanlsb/mentions/internal/buildinfo"
	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/maintainer"
	"github.com/aidanlsb/mentions/internal/parser"
	"github.com/aidanlsb/mentions/internal/paths"
	"github.com/aidanlsb/mentions/internal/suggest"
	"github.com/aidanlsb/mentions/internal/wikilink"
)

// CommandCreateNote creates the note behind a "New ..." completion.
// Arguments: [kind, label].
const CommandCreateNote = "mentions.createNote"

// LSP Protocol Types
// Only the fields this server reads or writes are declared.

type InitializeParams struct {
	RootURI string `json:"rootUri"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type ServerCapabilities struct {
	TextDocumentSync       int                    `json:"textDocumentSync"`
	CompletionProvider     *CompletionOptions     `json:"completionProvider,omitempty"`
	DefinitionProvider     bool                   `json:"definitionProvider"`
	HoverProvider          bool                   `json:"hoverProvider"`
	ExecuteCommandProvider *ExecuteCommandOptions `json:"executeCommandProvider,omitempty"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters"`
}

type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type VersionedTextDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int    `json:"version"`
}

type TextDocumentItem struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Version    int    `json:"version"`
	Text       string `json:"text"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type TextDocumentContentChangeEvent struct {
	Text string `json:"text"` // Full content (we use full sync)
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

type CompletionContext struct {
	TriggerKind      int    `json:"triggerKind"`
	TriggerCharacter string `json:"triggerCharacter,omitempty"`
}

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

type Command struct {
	Title     string        `json:"title"`
	Command   string        `json:"command"`
	Arguments []interface{} `json:"arguments,omitempty"`
}

type CompletionItem struct {
	Label      string    `json:"label"`
	Kind       int       `json:"kind,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	FilterText string    `json:"filterText,omitempty"`
	SortText   string    `json:"sortText,omitempty"`
	TextEdit   *TextEdit `json:"textEdit,omitempty"`
	Command    *Command  `json:"command,omitempty"`
}

type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments"`
}

// CreateNoteResult is returned by CommandCreateNote.
type CreateNoteResult struct {
	Path    string `json:"path"`
	URI     string `json:"uri"`
	Created bool   `json:"created"`
}

type DidChangeConfigurationParams struct {
	Settings json.RawMessage `json:"settings"`
}

// mentionsSettings is the "mentions" section of the client configuration.
type mentionsSettings struct {
	Mentions *struct {
		PeopleFolder    *string `json:"people_folder"`
		LocationsFolder *string `json:"locations_folder"`
	} `json:"mentions"`
}

type DidChangeWatchedFilesParams struct {
	Changes []FileEvent `json:"changes"`
}

type FileEvent struct {
	URI  string `json:"uri"`
	Type int    `json:"type"`
}

type ShowMessageParams struct {
	Type    int    `json:"type"`
	Message string `json:"message"`
}

// Completion item kinds
const (
	CompletionKindFile      = 17
	CompletionKindReference = 18
)

// File change types
const (
	FileChangeCreated = 1
	FileChangeChanged = 2
	FileChangeDeleted = 3
)

// Message types
const (
	MessageTypeError   = 1
	MessageTypeWarning = 2
	MessageTypeInfo    = 3
)

// Handler implementations

func (s *Server) handleInitialize(msg jsonRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "Invalid params")
	}

	// If rootUri is provided and we don't have a vault yet, use it
	if s.ws == nil && params.RootURI != "" {
		if err := s.openWorkspace(uriToPath(params.RootURI)); err != nil {
			s.logger.Error("failed to open vault from rootUri", "uri", params.RootURI, "err", err)
		}
	}

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: 1, // Full sync
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{string(index.NameMarker), string(index.LocationMarker)},
			},
			DefinitionProvider: true,
			HoverProvider:      true,
			ExecuteCommandProvider: &ExecuteCommandOptions{
				Commands: []string{CommandCreateNote},
			},
		},
		ServerInfo: &ServerInfo{Name: "mentions", Version: buildinfo.Version},
	}

	return s.sendResult(msg.ID, result)
}

func (s *Server) handleDidOpen(msg jsonRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Put(params.TextDocument.URI, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", "uri", params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidChange(msg jsonRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// Full sync: the last change carries the whole text.
	if n := len(params.ContentChanges); n > 0 {
		s.documents.Put(params.TextDocument.URI, params.ContentChanges[n-1].Text, params.TextDocument.Version)
	}
	return nil
}

func (s *Server) handleDidClose(msg jsonRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.sessionMu.Lock()
	delete(s.sessions, params.TextDocument.URI)
	s.sessionMu.Unlock()
	s.logger.Debug("closed", "uri", params.TextDocument.URI)
	return nil
}

// session returns the suggestion session of a document.
func (s *Server) session(uri string) *suggest.Session {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	sess, ok := s.sessions[uri]
	if !ok {
		sess = s.ws.NewSession()
		s.sessions[uri] = sess
	}
	return sess
}

func (s *Server) handleCompletion(msg jsonRPCMessage) error {
	var params CompletionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "Invalid params")
	}

	empty := CompletionList{Items: []CompletionItem{}}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil || s.ws == nil {
		return s.sendResult(msg.ID, empty)
	}

	sess := s.session(params.TextDocument.URI)
	if sess.Update(toEngine(doc, params.Position), doc) != suggest.Suggesting {
		return s.sendResult(msg.ID, empty)
	}
	ctx, _ := sess.Context()

	cands, err := sess.Suggestions()
	if err != nil {
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}

	rng := Range{Start: fromEngine(doc, ctx.Start), End: fromEngine(doc, ctx.End)}
	items := make([]CompletionItem, 0, len(cands))
	for i, c := range cands {
		items = append(items, s.completionItem(c, rng, i))
	}

	// Incomplete: the list depends on the typed text and on the index, so
	// the client must ask again on every keystroke.
	return s.sendResult(msg.ID, CompletionList{IsIncomplete: true, Items: items})
}

func (s *Server) completionItem(c suggest.Candidate, rng Range, i int) CompletionItem {
	engine := s.ws.Engine
	item := CompletionItem{
		Label:      suggest.Render(c),
		Kind:       CompletionKindReference,
		Detail:     engine.LinkTarget(c.Kind, c.Label),
		FilterText: string(c.Kind.Marker()) + c.Label,
		SortText:   fmt.Sprintf("%05d", i),
		TextEdit: &TextEdit{
			Range:   rng,
			NewText: engine.Link(c.Kind, c.Label),
		},
	}
	if c.Op == suggest.OpCreate {
		item.Kind = CompletionKindFile
		item.Command = &Command{
			Title:     "Create " + c.Kind.Noun() + " note",
			Command:   CommandCreateNote,
			Arguments: []interface{}{c.Kind.String(), c.Label},
		}
	}
	return item
}

func (s *Server) handleExecuteCommand(msg jsonRPCMessage) error {
	var params ExecuteCommandParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "Invalid params")
	}
	if params.Command != CommandCreateNote {
		return s.sendError(msg.ID, codeInvalidParams, "unknown command: "+params.Command)
	}
	if s.ws == nil {
		return s.sendError(msg.ID, codeNotInitialized, "no vault is open")
	}

	var kindName, label string
	if len(params.Arguments) != 2 ||
		json.Unmarshal(params.Arguments[0], &kindName) != nil ||
		json.Unmarshal(params.Arguments[1], &label) != nil {
		return s.sendError(msg.ID, codeInvalidParams, CommandCreateNote+" expects [kind, label]")
	}
	kind, err := index.ParseKind(kindName)
	if err != nil {
		return s.sendError(msg.ID, codeInvalidParams, err.Error())
	}

	path, err := s.ws.Engine.CreateNote(kind, label)
	created := err == nil
	if err != nil && !suggest.IsExists(err) {
		s.logger.Error("failed to create note", "path", path, "err", err)
		s.showMessage(MessageTypeError, "mentions: "+err.Error())
		return s.sendError(msg.ID, codeInternalError, err.Error())
	}

	// The watcher would catch this too; rebuilding now makes the next
	// completion see the note without waiting for the debounce.
	if err := s.ws.Dispatch(maintainer.Event{Op: maintainer.OpCreate, Path: path}); err != nil {
		s.logger.Warn("rebuild after create failed", "err", err)
	}

	return s.sendResult(msg.ID, CreateNoteResult{
		Path:    path,
		URI:     s.pathToURI(path),
		Created: created,
	})
}

func (s *Server) handleDefinition(msg jsonRPCMessage) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "Invalid params")
	}

	target, _, ok := s.linkAt(params)
	if !ok {
		return s.sendResult(msg.ID, nil)
	}

	full, err := s.ws.Dir.Abs(target)
	if err != nil {
		return s.sendResult(msg.ID, nil)
	}
	if _, err := os.Stat(full); err != nil {
		return s.sendResult(msg.ID, nil)
	}

	return s.sendResult(msg.ID, Location{
		URI: s.pathToURI(full),
		Range: Range{
			Start: Position{Line: 0, Character: 0},
			End:   Position{Line: 0, Character: 0},
		},
	})
}

func (s *Server) handleHover(msg jsonRPCMessage) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "Invalid params")
	}

	target, rng, ok := s.linkAt(params)
	if !ok {
		return s.sendResult(msg.ID, nil)
	}
	kind, name, ok := index.Match(target)
	if !ok {
		return s.sendResult(msg.ID, nil)
	}

	content, err := s.ws.Dir.ReadFile(target)
	if err != nil {
		return s.sendResult(msg.ID, Hover{
			Contents: MarkupContent{
				Kind:  "markdown",
				Value: fmt.Sprintf("**Not found:** `%s`", target),
			},
			Range: &rng,
		})
	}

	return s.sendResult(msg.ID, Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: hoverMarkdown(kind, name, target, content),
		},
		Range: &rng,
	})
}

// hoverMarkdown summarises a mention note.
func hoverMarkdown(kind index.Kind, name, target, content string) string {
	note, err := parser.ParseNote(content)

	title := note.Title()
	if title == "" {
		title = name
	}

	var hover strings.Builder
	fmt.Fprintf(&hover, "### %s\n\n", title)
	fmt.Fprintf(&hover, "**%s** `%s`\n", kind.Noun(), target)

	if err == nil && note.Frontmatter != nil && len(note.Frontmatter.Fields) > 0 {
		hover.WriteString("\n")
		for _, k := range note.Frontmatter.Keys() {
			fmt.Fprintf(&hover, "- `%s`: %v\n", k, note.Frontmatter.Fields[k])
		}
	}
	return hover.String()
}

// linkAt finds the wikilink under the cursor and returns its target and
// range.
func (s *Server) linkAt(params TextDocumentPositionParams) (string, Range, bool) {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil || s.ws == nil {
		return "", Range{}, false
	}

	line := doc.Line(params.Position.Line)
	m, ok := wikilink.At(line, byteColumn(line, params.Position.Character))
	if !ok {
		return "", Range{}, false
	}

	rng := Range{
		Start: Position{Line: params.Position.Line, Character: utf16Column(line, m.Start)},
		End:   Position{Line: params.Position.Line, Character: utf16Column(line, m.End)},
	}
	return m.Target, rng, true
}

func (s *Server) handleDidChangeConfiguration(msg jsonRPCMessage) error {
	var params DidChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	var settings mentionsSettings
	if len(params.Settings) == 0 || json.Unmarshal(params.Settings, &settings) != nil || settings.Mentions == nil {
		return nil
	}
	if s.ws == nil {
		s.logger.Warn("ignoring configuration change: no vault is open")
		return nil
	}

	m := settings.Mentions
	updated, err := s.ws.UpdateSettings(func(st *config.Settings) error {
		if m.PeopleFolder != nil {
			if err := st.Set(config.KeyPeopleFolder, *m.PeopleFolder); err != nil {
				return err
			}
		}
		if m.LocationsFolder != nil {
			if err := st.Set(config.KeyLocationsFolder, *m.LocationsFolder); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update settings", "err", err)
		s.showMessage(MessageTypeWarning, "mentions: "+err.Error())
		return nil
	}

	s.logger.Info("settings updated",
		"people_folder", updated.PeopleFolder,
		"locations_folder", updated.LocationsFolder)
	return nil
}

func (s *Server) handleDidChangeWatchedFiles(msg jsonRPCMessage) error {
	var params DidChangeWatchedFilesParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}
	if s.ws == nil {
		return nil
	}

	// One rebuild covers any number of changes.
	var last *maintainer.Event
	for _, change := range params.Changes {
		rel, err := paths.Rel(s.vaultPath, uriToPath(change.URI))
		if err != nil {
			continue
		}
		// Content edits never move a note between indexes, so
		// FileChangeChanged is ignored.
		switch change.Type {
		case FileChangeCreated:
			last = &maintainer.Event{Op: maintainer.OpCreate, Path: rel}
		case FileChangeDeleted:
			last = &maintainer.Event{Op: maintainer.OpDelete, Path: rel}
		}
	}
	if last == nil {
		return nil
	}
	if err := s.ws.Dispatch(*last); err != nil {
		s.logger.Warn("rebuild failed", "err", err)
	}
	return nil
}
