package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aidanlsb/mentions/internal/maintainer"
	"github.com/aidanlsb/mentions/internal/testutil"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []maintainer.Event
	calls  chan maintainer.Event
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{calls: make(chan maintainer.Event, 64)}
}

func (h *recordingHandler) Handle(ev maintainer.Event) error {
	h.mu.Lock()
	h.events = append(h.events, ev)
	h.mu.Unlock()
	h.calls <- ev
	return nil
}

func (h *recordingHandler) wait(t *testing.T) maintainer.Event {
	t.Helper()
	select {
	case ev := <-h.calls:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return maintainer.Event{}
	}
}

func startWatcher(t *testing.T, vaultPath string, h Handler, onSettings func()) {
	t.Helper()

	w, err := New(Config{
		VaultPath:         vaultPath,
		Handler:           h,
		DebounceDelay:     20 * time.Millisecond,
		OnSettingsChanged: onSettings,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	select {
	case <-w.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not become ready")
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		op     fsnotify.Op
		want   maintainer.Event
		wantOK bool
	}{
		{op: fsnotify.Create, want: maintainer.Event{Op: maintainer.OpCreate, Path: "_people/@Ann.md"}, wantOK: true},
		{op: fsnotify.Remove, want: maintainer.Event{Op: maintainer.OpDelete, Path: "_people/@Ann.md"}, wantOK: true},
		// The new name of a rename arrives separately as a Create.
		{op: fsnotify.Rename, want: maintainer.Event{Op: maintainer.OpRename, OldPath: "_people/@Ann.md"}, wantOK: true},
		{op: fsnotify.Write, wantOK: false},
		{op: fsnotify.Chmod, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			ev, ok := Translate("_people/@Ann.md", tt.op)
			if ok != tt.wantOK {
				t.Fatalf("ok=%v, want %v", ok, tt.wantOK)
			}
			if ok && ev != tt.want {
				t.Fatalf("event=%+v, want %+v", ev, tt.want)
			}
		})
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(Config{Handler: newRecordingHandler()}); err == nil {
		t.Fatal("expected error without vault path")
	}
	if _, err := New(Config{VaultPath: t.TempDir()}); err == nil {
		t.Fatal("expected error without handler")
	}
}

func TestWatcherDeliversCreate(t *testing.T) {
	tv := testutil.NewTestVault(t).WithDir("_people").Build()
	h := newRecordingHandler()
	startWatcher(t, tv.Path, h, nil)

	tv.WriteFile("_people/@Ann.md", "# Ann")

	ev := h.wait(t)
	if ev.Path != "_people/@Ann.md" {
		t.Fatalf("event=%+v", ev)
	}
}

func TestWatcherSeesNewDirectories(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	h := newRecordingHandler()
	startWatcher(t, tv.Path, h, nil)

	if err := os.Mkdir(filepath.Join(tv.Path, "team"), 0o755); err != nil {
		t.Fatal(err)
	}
	h.wait(t)

	tv.WriteFile("team/@Bo.md", "# Bo")
	ev := h.wait(t)
	if ev.Path != "team/@Bo.md" {
		t.Fatalf("event=%+v", ev)
	}
}

func TestWatcherIgnoresIgnoredDirs(t *testing.T) {
	tv := testutil.NewTestVault(t).WithDir(".git").Build()
	h := newRecordingHandler()
	startWatcher(t, tv.Path, h, nil)

	tv.WriteFile(".git/@Nope.md", "x")
	tv.WriteFile("@marker.md", "x")

	ev := h.wait(t)
	if ev.Path != "@marker.md" {
		t.Fatalf("expected only the vault-root event, got %+v", ev)
	}
}

func TestWatcherReportsSettingsChanges(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	h := newRecordingHandler()
	changed := make(chan struct{}, 4)
	startWatcher(t, tv.Path, h, func() { changed <- struct{}{} })

	tv.WriteFile("mentions.yaml", "people_folder: team/\n")

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("settings change not reported")
	}
}
