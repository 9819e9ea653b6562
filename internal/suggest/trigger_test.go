package suggest

import (
	"errors"
	"testing"

	"github.com/aidanlsb/mentions/internal/index"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		ch        int // -1 means end of line
		wantOK    bool
		wantKind  index.Kind
		wantStart int
		wantEnd   int
		wantQuery string
	}{
		{name: "person mid-line", line: "hello @Jo", ch: -1, wantOK: true, wantKind: index.KindName, wantStart: 6, wantEnd: 9, wantQuery: "Name_Jo"},
		{name: "location at line start", line: "!Os", ch: -1, wantOK: true, wantKind: index.KindLocation, wantStart: 0, wantEnd: 3, wantQuery: "Location_Os"},
		{name: "bare marker", line: "met @", ch: -1, wantOK: true, wantKind: index.KindName, wantStart: 4, wantEnd: 5, wantQuery: "Name_"},
		{name: "text with spaces", line: "@John Do", ch: -1, wantOK: true, wantKind: index.KindName, wantStart: 0, wantEnd: 8, wantQuery: "Name_John Do"},
		{name: "nearest marker wins", line: "@Ann at !Ro", ch: -1, wantOK: true, wantKind: index.KindLocation, wantStart: 8, wantEnd: 11, wantQuery: "Location_Ro"},
		{name: "nearest marker wins person", line: "!Rome with @An", ch: -1, wantOK: true, wantKind: index.KindName, wantStart: 11, wantEnd: 14, wantQuery: "Name_An"},
		{name: "closed link earlier on line", line: "link]] @Jo", ch: -1, wantOK: true, wantKind: index.KindName, wantStart: 7, wantEnd: 10, wantQuery: "Name_Jo"},
		{name: "cursor mid-line", line: "hello @Jo there", ch: 9, wantOK: true, wantKind: index.KindName, wantStart: 6, wantEnd: 9, wantQuery: "Name_Jo"},
		{name: "tab before marker", line: "\t@Jo", ch: -1, wantOK: true, wantKind: index.KindName, wantStart: 1, wantEnd: 4, wantQuery: "Name_Jo"},
		{name: "cursor past end is clamped", line: "@Jo", ch: 40, wantOK: true, wantKind: index.KindName, wantStart: 0, wantEnd: 3, wantQuery: "Name_Jo"},

		{name: "no marker", line: "hello world", ch: -1, wantOK: false},
		{name: "inside closed link", line: "@Jo]]", ch: -1, wantOK: false},
		{name: "after inserted link", line: "[[_people/@Jo.md|@Jo]]", ch: -1, wantOK: false},
		{name: "embedded in word", line: "x@Jo", ch: -1, wantOK: false},
		{name: "email address", line: "mail me at ann@example.com", ch: -1, wantOK: false},
		{name: "exclamation after word", line: "wow!", ch: -1, wantOK: false},
		{name: "marker right of cursor", line: "ab @Jo", ch: 2, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := tt.ch
			if ch < 0 {
				ch = len(tt.line)
			}
			got, ok := Detect(Position{Line: 0, Ch: ch}, Lines{tt.line})
			if ok != tt.wantOK {
				t.Fatalf("ok=%v, want %v (ctx %+v)", ok, tt.wantOK, got)
			}
			if !ok {
				return
			}
			if got.Kind != tt.wantKind {
				t.Errorf("kind=%v, want %v", got.Kind, tt.wantKind)
			}
			if got.Start != (Position{Line: 0, Ch: tt.wantStart}) || got.End != (Position{Line: 0, Ch: tt.wantEnd}) {
				t.Errorf("span=[%v,%v], want [%d,%d]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
			if got.Query != tt.wantQuery {
				t.Errorf("query=%q, want %q", got.Query, tt.wantQuery)
			}
		})
	}
}

func TestDetectUsesCursorLine(t *testing.T) {
	lines := SplitLines("first @Ann\nsecond !Ro")

	got, ok := Detect(Position{Line: 1, Ch: 10}, lines)
	if !ok {
		t.Fatal("expected trigger on second line")
	}
	if got.Start.Line != 1 || got.Kind != index.KindLocation || got.Query != "Location_Ro" {
		t.Fatalf("unexpected context: %+v", got)
	}

	if _, ok := Detect(Position{Line: 5, Ch: 0}, lines); ok {
		t.Fatal("expected no trigger past the last line")
	}
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		in       string
		wantKind index.Kind
		wantText string
		wantErr  bool
	}{
		{in: "Name_Jo", wantKind: index.KindName, wantText: "Jo"},
		{in: "Location_", wantKind: index.KindLocation, wantText: ""},
		{in: "Name_snake_case", wantKind: index.KindName, wantText: "snake_case"},
		{in: "NameJo", wantErr: true},
		{in: "Pet_Rex", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, text, err := ParseQuery(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedQuery) {
					t.Fatalf("expected ErrMalformedQuery, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.wantKind || text != tt.wantText {
				t.Fatalf("got (%v, %q), want (%v, %q)", kind, text, tt.wantKind, tt.wantText)
			}
		})
	}
}

func TestFormatQueryRoundTrip(t *testing.T) {
	q := FormatQuery(index.KindLocation, "St. Ives")
	if q != "Location_St. Ives" {
		t.Fatalf("FormatQuery = %q", q)
	}
}
