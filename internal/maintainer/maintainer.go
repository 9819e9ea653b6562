// Package maintainer keeps the person and location indexes in step with the
// vault.
//
// It never patches the indexes: every file-store mutation, whether or not it
// touches a person or location note, triggers a full re-classification of
// the current file list. Lost or overlapping events therefore heal on the
// next one.
package maintainer

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/logging"
	"github.com/aidanlsb/mentions/internal/vault"
)

// Op is a file-store mutation.
type Op int

const (
	OpCreate Op = iota + 1
	OpDelete
	OpRename
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpRename:
		return "rename"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Event describes one mutation. A rename carries the new name in Path and
// the old one in OldPath; either may be empty when the source only knows
// one side.
type Event struct {
	Op      Op
	Path    string
	OldPath string
}

// Config holds the collaborators of a Maintainer.
type Config struct {
	Files    vault.FileStore
	Store    *index.Store
	Settings config.Source
	Logger   *log.Logger

	// OnRebuild is called after each installed rebuild (optional).
	OnRebuild func(index.Snapshot)
}

// Maintainer owns writes to an index.Store.
type Maintainer struct {
	files     vault.FileStore
	store     *index.Store
	settings  config.Source
	logger    *log.Logger
	onRebuild func(index.Snapshot)

	// rebuildMu orders list+install pairs so an older listing can never be
	// installed over a newer one.
	rebuildMu sync.Mutex
}

// New creates a Maintainer.
func New(cfg Config) (*Maintainer, error) {
	if cfg.Files == nil {
		return nil, fmt.Errorf("file store is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("index store is required")
	}
	if cfg.Settings == nil {
		return nil, fmt.Errorf("settings are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Maintainer{
		files:     cfg.Files,
		store:     cfg.Store,
		settings:  cfg.Settings,
		logger:    logger,
		onRebuild: cfg.OnRebuild,
	}, nil
}

// Start ensures the people and locations folders exist, then builds the
// initial index. Callers run it once their own start-up has finished.
func (m *Maintainer) Start(ctx context.Context) error {
	if err := m.EnsureFolders(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.Rebuild()
	return err
}

// EnsureFolders creates the configured people and locations folders if
// they are missing. Failures are returned as-is; there is nothing useful to
// do about them here.
func (m *Maintainer) EnsureFolders() error {
	s := m.settings.Settings()
	for _, folder := range []string{s.PeopleFolder, s.LocationsFolder} {
		if folder == "" {
			continue
		}
		exists, err := m.files.FolderExists(folder)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := m.files.CreateFolder(folder); err != nil {
			return err
		}
		m.logger.Info("created folder", "folder", folder)
	}
	return nil
}

// Handle is the entry point for file-store mutation events.
func (m *Maintainer) Handle(ev Event) error {
	m.logger.Debug("vault event", "op", ev.Op, "path", ev.Path, "old_path", ev.OldPath)
	_, err := m.Rebuild()
	return err
}

// Rebuild classifies the full current file list and installs the result.
func (m *Maintainer) Rebuild() (index.Snapshot, error) {
	m.rebuildMu.Lock()
	defer m.rebuildMu.Unlock()

	files, err := m.files.ListFiles()
	if err != nil {
		return index.Snapshot{}, err
	}

	snap := m.store.Install(index.Classify(files))
	m.logger.Debug("index rebuilt",
		"generation", snap.Generation,
		"people", snap.People.Len(),
		"locations", snap.Locations.Len())

	if m.onRebuild != nil {
		m.onRebuild(snap)
	}
	return snap, nil
}
