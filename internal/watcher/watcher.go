// Package watcher turns file system notifications for a vault into
// maintainer events.
//
// It can be used standalone via `mentions watch` or embedded in the LSP server.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/aidanlsb/mentions/internal/config"
	"github.com/aidanlsb/mentions/internal/logging"
	"github.com/aidanlsb/mentions/internal/maintainer"
	"github.com/aidanlsb/mentions/internal/paths"
	"github.com/aidanlsb/mentions/internal/vault"
)

// Handler receives file-store mutations.
type Handler interface {
	Handle(ev maintainer.Event) error
}

// Watcher monitors a vault directory and forwards create, delete and rename
// notifications to a Handler.
//
// Events arriving within DebounceDelay of each other are coalesced and only
// the most recent is delivered: every rebuild lists the whole vault, so one
// delivery covers the burst.
type Watcher struct {
	vaultPath string
	handler   Handler
	logger    *log.Logger

	debounceDelay time.Duration

	fsWatcher *fsnotify.Watcher
	ready     chan struct{}

	mu              sync.Mutex
	pending         *maintainer.Event
	pendingAt       time.Time
	pendingCount    int
	settingsChanged bool
	settingsAt      time.Time

	onSettings func()
}

// Config holds configuration options for the Watcher.
type Config struct {
	VaultPath     string
	Handler       Handler
	DebounceDelay time.Duration // Default: 100ms
	Logger        *log.Logger

	// OnSettingsChanged is called when mentions.yaml is written (optional).
	OnSettingsChanged func()
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.VaultPath == "" {
		return nil, fmt.Errorf("vault path is required")
	}
	if cfg.Handler == nil {
		return nil, fmt.Errorf("handler is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Watcher{
		vaultPath:     cfg.VaultPath,
		handler:       cfg.Handler,
		logger:        logger,
		debounceDelay: debounce,
		ready:         make(chan struct{}),
		onSettings:    cfg.OnSettingsChanged,
	}, nil
}

// Ready is closed once the vault is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Start begins watching the vault for file changes.
// It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.vaultPath); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}

	w.logger.Debug("watching vault", "path", w.vaultPath)
	close(w.ready)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}

	// New directories are watched too, so notes created inside them are seen.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch directory", "path", event.Name, "err", err)
			}
		}
	}

	rel, err := paths.Rel(w.vaultPath, event.Name)
	if err != nil {
		return
	}

	if rel == config.SettingsFile && event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		w.mu.Lock()
		w.settingsChanged = true
		w.settingsAt = time.Now()
		w.mu.Unlock()
	}

	ev, ok := Translate(rel, event.Op)
	if !ok {
		return
	}
	w.logger.Debug("fs event", "op", event.Op, "path", rel)
	w.schedule(ev)
}

// Translate maps a file system operation on a vault-relative path to a
// maintainer event. Writes and chmods do not change the file list and are
// dropped.
func Translate(rel string, op fsnotify.Op) (maintainer.Event, bool) {
	switch {
	case op&fsnotify.Create != 0:
		return maintainer.Event{Op: maintainer.OpCreate, Path: rel}, true
	case op&fsnotify.Remove != 0:
		return maintainer.Event{Op: maintainer.OpDelete, Path: rel}, true
	case op&fsnotify.Rename != 0:
		// fsnotify reports the old name here; the new name arrives as a Create.
		return maintainer.Event{Op: maintainer.OpRename, OldPath: rel}, true
	}
	return maintainer.Event{}, false
}

// schedule records ev as the latest pending event.
func (w *Watcher) schedule(ev maintainer.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = &ev
	w.pendingAt = time.Now()
	w.pendingCount++
}

// processDebounced delivers pending events after the debounce delay.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(max(w.debounceDelay/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending delivers the pending event once the vault has been quiet
// for the debounce delay.
func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()

	var (
		ev       *maintainer.Event
		count    int
		settings bool
	)
	if w.settingsChanged && now.Sub(w.settingsAt) >= w.debounceDelay {
		settings = true
		w.settingsChanged = false
	}
	if w.pending != nil && now.Sub(w.pendingAt) >= w.debounceDelay {
		ev, count = w.pending, w.pendingCount
		w.pending, w.pendingCount = nil, 0
	}
	w.mu.Unlock()

	// Settings first so a rebuild triggered by the same burst sees the new folders.
	if settings && w.onSettings != nil {
		w.onSettings()
	}
	if ev == nil {
		return
	}

	if err := w.handler.Handle(*ev); err != nil {
		w.logger.Warn("failed to handle vault event", "op", ev.Op, "path", ev.Path, "old_path", ev.OldPath, "err", err)
		return
	}
	w.logger.Debug("handled vault event", "op", ev.Op, "path", ev.Path, "old_path", ev.OldPath, "coalesced", count)
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if path != w.vaultPath && vault.IsIgnoredDir(info.Name()) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logger.Warn("failed to watch", "path", path, "err", err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path lies in an ignored directory.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.vaultPath, path)
	if err != nil {
		return false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts {
		if vault.IsIgnoredDir(part) {
			return true
		}
	}
	return false
}
