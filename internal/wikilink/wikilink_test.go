package wikilink

import "testing"

func TestFormat(t *testing.T) {
	if got := Format("_people/@Zz.md", "@Zz"); got != "[[_people/@Zz.md|@Zz]]" {
		t.Fatalf("Format = %q", got)
	}
	if got := Format("note.md", ""); got != "[[note.md]]" {
		t.Fatalf("Format without display = %q", got)
	}
}

func TestFindAllInLine(t *testing.T) {
	line := "Met [[_people/@Ann.md|@Ann]] in [[_locations/!Rome.md|!Rome]] and [[plain]]"
	m := FindAllInLine(line)
	if len(m) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(m))
	}
	if m[0].Target != "_people/@Ann.md" || m[1].Target != "_locations/!Rome.md" || m[2].Target != "plain" {
		t.Fatalf("unexpected targets: %#v", []string{m[0].Target, m[1].Target, m[2].Target})
	}
	if m[2].DisplayText != nil {
		t.Fatalf("expected no display text for plain link")
	}
	if line[m[0].Start:m[0].End] != m[0].Literal {
		t.Fatalf("literal does not match span")
	}
}

func TestAt(t *testing.T) {
	line := "x [[_people/@Ann.md|@Ann]] y"
	if _, ok := At(line, 0); ok {
		t.Fatal("column 0 is outside the link")
	}
	m, ok := At(line, 5)
	if !ok || m.Target != "_people/@Ann.md" {
		t.Fatalf("At(5) = %#v, %v", m, ok)
	}
	if _, ok := At(line, len(line)); ok {
		t.Fatal("end of line is outside the link")
	}
}
