// Package workspace wires one vault's file store, indexes, settings,
// maintainer and suggestion engine together.
//
// The lsp, mcp and cli front ends all go through a Workspace so they share
// a single index and a single writer.
package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/logging"
	"github.com/aidanlsb/mentions/internal/maintainer"
	"github.com/aidanlsb/mentions/internal/suggest"
	"github.com/aidanlsb/mentions/internal/vault"
	"github.com/aidanlsb/mentions/internal/watcher"
)

// Options configures Open.
type Options struct {
	Logger *log.Logger

	// DebounceDelay is passed to the watcher (default 100ms).
	DebounceDelay time.Duration

	// OnRebuild is called after every installed rebuild (optional).
	OnRebuild func(index.Snapshot)
}

// Workspace is an opened vault.
type Workspace struct {
	Dir        *vault.Dir
	Store      *index.Store
	Settings   *config.Live
	Maintainer *maintainer.Maintainer
	Engine     *suggest.Engine

	logger        *log.Logger
	debounceDelay time.Duration
}

// Open loads the vault's settings and builds its components. Nothing is
// indexed until Start.
func Open(vaultPath string, opts Options) (*Workspace, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	dir, err := vault.Open(vaultPath)
	if err != nil {
		return nil, err
	}
	live, err := config.LoadLive(dir.Root())
	if err != nil {
		return nil, err
	}

	store := index.NewStore()
	m, err := maintainer.New(maintainer.Config{
		Files:     dir,
		Store:     store,
		Settings:  live,
		Logger:    logger,
		OnRebuild: opts.OnRebuild,
	})
	if err != nil {
		return nil, err
	}
	engine, err := suggest.NewEngine(suggest.EngineConfig{
		Store:    store,
		Files:    dir,
		Settings: live,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Dir:           dir,
		Store:         store,
		Settings:      live,
		Maintainer:    m,
		Engine:        engine,
		logger:        logger,
		debounceDelay: opts.DebounceDelay,
	}, nil
}

// Root returns the vault path.
func (w *Workspace) Root() string {
	return w.Dir.Root()
}

// Start creates the configured folders and builds the initial index.
func (w *Workspace) Start(ctx context.Context) error {
	if err := w.Maintainer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start index: %w", err)
	}
	snap := w.Store.Snapshot()
	w.logger.Info("index ready", "people", snap.People.Len(), "locations", snap.Locations.Len())
	return nil
}

// Dispatch delivers a file-store mutation to the maintainer.
func (w *Workspace) Dispatch(ev maintainer.Event) error {
	return w.Maintainer.Handle(ev)
}

// NewSession returns a suggestion session for one editor.
func (w *Workspace) NewSession() *suggest.Session {
	return suggest.NewSession(w.Engine)
}

// UpdateSettings changes and persists the settings, then makes sure the
// configured folders exist.
func (w *Workspace) UpdateSettings(fn func(*config.Settings) error) (config.Settings, error) {
	s, err := w.Settings.Update(fn)
	if err != nil {
		return s, err
	}
	if err := w.Maintainer.EnsureFolders(); err != nil {
		return s, err
	}
	return s, nil
}

// ReloadSettings re-reads mentions.yaml after an outside edit.
func (w *Workspace) ReloadSettings() error {
	s, changed, err := w.Settings.Reload()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	w.logger.Info("settings reloaded", "people_folder", s.PeopleFolder, "locations_folder", s.LocationsFolder)
	return w.Maintainer.EnsureFolders()
}

// NewWatcher returns a watcher feeding this workspace.
func (w *Workspace) NewWatcher() (*watcher.Watcher, error) {
	return watcher.New(watcher.Config{
		VaultPath:     w.Root(),
		Handler:       w.Maintainer,
		DebounceDelay: w.debounceDelay,
		Logger:        w.logger,
		OnSettingsChanged: func() {
			if err := w.ReloadSettings(); err != nil {
				w.logger.Warn("failed to reload settings", "err", err)
			}
		},
	})
}

// Watch watches the vault until ctx is cancelled.
func (w *Workspace) Watch(ctx context.Context) error {
	wt, err := w.NewWatcher()
	if err != nil {
		return err
	}
	return wt.Start(ctx)
}
