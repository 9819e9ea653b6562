package parser

// Note is the summary of a person or location note.
type Note struct {
	Frontmatter *Frontmatter
	Headings    []Heading
}

// ParseNote reads frontmatter and headings. Invalid frontmatter is returned
// as an error together with the headings that could still be read.
func ParseNote(content string) (*Note, error) {
	fm, fmErr := ParseFrontmatter(content)
	body, startLine := Body(content)
	note := &Note{
		Frontmatter: fm,
		Headings:    ExtractHeadings(body, startLine),
	}
	return note, fmErr
}

// Title returns the first top-level heading, falling back to the first
// heading of any level.
func (n *Note) Title() string {
	if n == nil || len(n.Headings) == 0 {
		return ""
	}
	for _, h := range n.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return n.Headings[0].Text
}
