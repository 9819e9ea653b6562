package suggest

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned when committing while no suggestion is active.
var ErrNoSession = errors.New("no active suggestion session")

// State is the state of a suggestion session.
type State int

const (
	Idle State = iota
	Suggesting
)

func (s State) String() string {
	if s == Suggesting {
		return "suggesting"
	}
	return "idle"
}

// Event drives a Session. See CursorMoved, Accepted and Dismissed.
type Event interface {
	isSessionEvent()
}

// CursorMoved is sent after every text or cursor change.
type CursorMoved struct {
	Cursor Position
	Lines  LineAccessor
}

// Accepted is sent when the user picks a candidate.
type Accepted struct {
	Candidate Candidate
	Editor    Editor
}

// Dismissed is sent when the user closes the popup.
type Dismissed struct{}

func (CursorMoved) isSessionEvent() {}
func (Accepted) isSessionEvent()    {}
func (Dismissed) isSessionEvent()   {}

// Session is the suggestion popup state machine for one editor.
//
//	Idle --trigger--> Suggesting --accept--> Idle
//	                  Suggesting --no trigger / dismiss--> Idle
//
// A new trigger while Suggesting replaces the context.
type Session struct {
	engine *Engine
	state  State
	ctx    TriggerContext
}

// NewSession returns an idle session.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Context returns the active trigger context; ok is false when idle.
func (s *Session) Context() (TriggerContext, bool) {
	return s.ctx, s.state == Suggesting
}

// Dispatch feeds one event to the session.
func (s *Session) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case CursorMoved:
		s.Update(ev.Cursor, ev.Lines)
		return nil
	case Accepted:
		return s.Commit(ev.Candidate, ev.Editor)
	case Dismissed:
		s.Cancel()
		return nil
	default:
		return fmt.Errorf("unknown session event %T", ev)
	}
}

// Update re-runs trigger detection. A trigger opens or refreshes the
// session; anything else cancels it.
func (s *Session) Update(cursor Position, lines LineAccessor) State {
	ctx, ok := s.engine.OnTrigger(cursor, lines)
	if !ok {
		s.Cancel()
		return s.state
	}
	s.ctx = ctx
	s.state = Suggesting
	return s.state
}

// Suggestions returns the candidates for the active context.
func (s *Session) Suggestions() ([]Candidate, error) {
	if s.state != Suggesting {
		return nil, nil
	}
	return s.engine.GetSuggestions(s.ctx)
}

// Commit applies a candidate and ends the session.
func (s *Session) Commit(c Candidate, ed Editor) error {
	if s.state != Suggesting {
		return ErrNoSession
	}
	s.Cancel()
	return s.engine.Select(c, ed)
}

// Cancel ends the session without side effects.
func (s *Session) Cancel() {
	s.state = Idle
	s.ctx = TriggerContext{}
}
