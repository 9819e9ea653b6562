package suggest

import (
	"errors"
	"testing"

	"github.com/aidanlsb/mentions/internal/index"
	"github.com/aidanlsb/mentions/internal/testutil"
)

func TestSessionLifecycle(t *testing.T) {
	tv := testutil.NewTestVault(t).WithPerson("_people/", "John").Build()
	engine, _ := newTestEngine(t, tv)
	s := NewSession(engine)

	if s.State() != Idle {
		t.Fatalf("new session state = %v", s.State())
	}
	if got, err := s.Suggestions(); err != nil || got != nil {
		t.Fatalf("idle Suggestions = %v, %v", got, err)
	}

	ed := newFakeEditor("hi @J")
	if err := s.Dispatch(CursorMoved{Cursor: Position{Ch: 5}, Lines: ed}); err != nil {
		t.Fatal(err)
	}
	if s.State() != Suggesting {
		t.Fatalf("state after trigger = %v", s.State())
	}

	// Typing more refreshes the context.
	ed.lines[0] = "hi @Jo"
	s.Dispatch(CursorMoved{Cursor: Position{Ch: 6}, Lines: ed})
	ctx, ok := s.Context()
	if !ok || ctx.Query != "Name_Jo" || ctx.End.Ch != 6 {
		t.Fatalf("context = %+v, %v", ctx, ok)
	}

	cands, err := s.Suggestions()
	if err != nil || len(cands) != 1 || cands[0].Label != "John" {
		t.Fatalf("Suggestions = %+v, %v", cands, err)
	}

	if err := s.Dispatch(Accepted{Candidate: cands[0], Editor: ed}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if s.State() != Idle {
		t.Fatalf("state after accept = %v", s.State())
	}
	if got := ed.String(); got != "hi [[_people/@John.md|@John]]" {
		t.Fatalf("buffer = %q", got)
	}
	if len(ed.replaced) != 1 {
		t.Fatalf("expected one replacement, got %d", len(ed.replaced))
	}

	// The cursor now sits behind the finished link: no new trigger.
	s.Dispatch(CursorMoved{Cursor: Position{Ch: len(ed.lines[0])}, Lines: ed})
	if s.State() != Idle {
		t.Fatalf("state after link = %v", s.State())
	}
}

func TestSessionCancel(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	engine, _ := newTestEngine(t, tv)
	s := NewSession(engine)

	ed := newFakeEditor("!Ro")
	s.Dispatch(CursorMoved{Cursor: Position{Ch: 3}, Lines: ed})
	if ctx, ok := s.Context(); !ok || ctx.Kind != index.KindLocation {
		t.Fatalf("context = %+v, %v", ctx, ok)
	}

	t.Run("dismiss", func(t *testing.T) {
		s.Dispatch(Dismissed{})
		if s.State() != Idle {
			t.Fatalf("state = %v", s.State())
		}
		if _, ok := s.Context(); ok {
			t.Fatal("expected no context after dismiss")
		}
	})

	t.Run("commit while idle", func(t *testing.T) {
		err := s.Commit(Candidate{Op: OpSet, Kind: index.KindLocation, Label: "Rome"}, ed)
		if !errors.Is(err, ErrNoSession) {
			t.Fatalf("expected ErrNoSession, got %v", err)
		}
		if len(ed.replaced) != 0 {
			t.Fatal("idle commit must not edit the buffer")
		}
	})

	t.Run("trigger lost", func(t *testing.T) {
		s.Dispatch(CursorMoved{Cursor: Position{Ch: 3}, Lines: ed})
		ed.lines[0] = "!Ro]]"
		s.Dispatch(CursorMoved{Cursor: Position{Ch: 5}, Lines: ed})
		if s.State() != Idle {
			t.Fatalf("state = %v", s.State())
		}
	})
}

func TestStateString(t *testing.T) {
	if Idle.String() != "idle" || Suggesting.String() != "suggesting" {
		t.Fatalf("unexpected state names %q %q", Idle, Suggesting)
	}
}
