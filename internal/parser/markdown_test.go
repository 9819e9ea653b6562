package parser

import "testing"

func TestExtractHeadings(t *testing.T) {
	content := "# Freya\n\nIntro\n\n## Meetings\n\n### 2025\n"
	got := ExtractHeadings(content, 1)

	want := []Heading{
		{Level: 1, Text: "Freya", Line: 1},
		{Level: 2, Text: "Meetings", Line: 5},
		{Level: 3, Text: "2025", Line: 7},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d headings, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParseNoteTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "created note", content: "# Zz", want: "Zz"},
		{name: "after frontmatter", content: "---\nrole: pilot\n---\n# Amelia\n", want: "Amelia"},
		{name: "prefers level one", content: "## Notes\n\n# Oslo\n", want: "Oslo"},
		{name: "falls back to first", content: "## Notes\n", want: "Notes"},
		{name: "no headings", content: "just text", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note, err := ParseNote(tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := note.Title(); got != tt.want {
				t.Fatalf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseNoteHeadingLinesAfterFrontmatter(t *testing.T) {
	note, err := ParseNote("---\na: 1\n---\n\n# Title\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(note.Headings) != 1 || note.Headings[0].Line != 5 {
		t.Fatalf("headings = %+v", note.Headings)
	}
	if note.Frontmatter == nil || note.Frontmatter.Fields["a"] != 1 {
		t.Fatalf("frontmatter = %+v", note.Frontmatter)
	}
}
