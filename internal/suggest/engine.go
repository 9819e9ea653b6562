package suggest

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/logging"
	"github.com/aidanlsb/mentions/internal/vault"
	"github.com/aidanlsb/mentions/internal/wikilink"
)

// Operation is what accepting a candidate does.
type Operation int

const (
	// OpSet links to an existing note.
	OpSet Operation = iota
	// OpCreate creates the note, then links to it.
	OpCreate
)

func (o Operation) String() string {
	if o == OpCreate {
		return "create"
	}
	return "set"
}

// Candidate is one suggestion shown to the user.
type Candidate struct {
	Op      Operation
	Kind    index.Kind
	Label   string
	Context TriggerContext
}

// Editor is the part of an editor the engine writes to.
type Editor interface {
	LineAccessor
	ReplaceRange(text string, start, end Position)
}

// EngineConfig holds the collaborators of an Engine.
type EngineConfig struct {
	Store    *index.Store
	Files    vault.FileStore
	Settings config.Source
	Logger   *log.Logger
}

// Engine answers suggestion queries against the shared index and applies
// accepted suggestions.
type Engine struct {
	store    *index.Store
	files    vault.FileStore
	settings config.Source
	logger   *log.Logger
}

// NewEngine creates an Engine.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("index store is required")
	}
	if cfg.Files == nil {
		return nil, fmt.Errorf("file store is required")
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{
		store:    cfg.Store,
		files:    cfg.Files,
		settings: cfg.Settings,
		logger:   logger,
	}, nil
}

// OnTrigger runs Detect for the editor's current cursor.
func (e *Engine) OnTrigger(cursor Position, lines LineAccessor) (TriggerContext, bool) {
	return Detect(cursor, lines)
}

// GetSuggestions lists existing notes whose names start with the typed text,
// in index order. Without a match it offers a single create candidate
// carrying the typed text verbatim, even when that text is empty.
//
// The index is read at call time; a rebuild that lands mid-session is
// picked up by the next call.
func (e *Engine) GetSuggestions(ctx TriggerContext) ([]Candidate, error) {
	kind, text, err := ParseQuery(ctx.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, ctx.Query)
	}

	entries := e.store.Lookup(kind, text)
	out := make([]Candidate, 0, max(len(entries), 1))
	for _, entry := range entries {
		out = append(out, Candidate{Op: OpSet, Kind: kind, Label: entry.Name, Context: ctx})
	}
	if len(out) == 0 {
		out = append(out, Candidate{Op: OpCreate, Kind: kind, Label: text, Context: ctx})
	}
	return out, nil
}

// Render returns the display string of a candidate.
func Render(c Candidate) string {
	if c.Op == OpCreate {
		return "New " + c.Kind.String() + ": " + c.Label
	}
	return c.Label
}

// LinkTarget is the vault-relative path a label links to:
// "<folder><marker><label>.md".
func (e *Engine) LinkTarget(kind index.Kind, label string) string {
	return e.settings.Settings().Folder(kind) + string(kind.Marker()) + label + ".md"
}

// Link is the wikilink that replaces a trigger span:
// "[[<folder><marker><label>.md|<marker><label>]]".
func (e *Engine) Link(kind index.Kind, label string) string {
	return wikilink.Format(e.LinkTarget(kind, label), string(kind.Marker())+label)
}

// NoteBody is the content of a newly created note.
func NoteBody(label string) string {
	return "# " + label
}

// CreateNote creates the note for label and returns its path.
func (e *Engine) CreateNote(kind index.Kind, label string) (string, error) {
	target := e.LinkTarget(kind, label)
	if err := e.files.CreateFile(target, NoteBody(label)); err != nil {
		return target, err
	}
	e.logger.Info("created note", "kind", kind.Noun(), "path", target)
	return target, nil
}

// Select applies an accepted candidate. A create candidate first creates
// its note; the trigger span is then replaced with the link either way. A
// failed create does not prevent the replacement and is returned after it.
func (e *Engine) Select(c Candidate, ed Editor) error {
	var createErr error
	if c.Op == OpCreate {
		if _, err := e.CreateNote(c.Kind, c.Label); err != nil {
			e.logger.Warn("create note failed", "label", c.Label, "err", err)
			createErr = err
		}
	}

	ed.ReplaceRange(e.Link(c.Kind, c.Label), c.Context.Start, c.Context.End)

	if createErr != nil {
		return fmt.Errorf("link inserted but note was not created: %w", createErr)
	}
	return nil
}

// IsExists reports whether err means the note already existed.
func IsExists(err error) bool {
	return errors.Is(err, vault.ErrExists)
}
