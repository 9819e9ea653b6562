// Package parser reads the parts of a note that are shown when a mention is
// inspected: YAML frontmatter and headings.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter represents parsed frontmatter data.
type Frontmatter struct {
	// Fields are the decoded YAML keys.
	Fields map[string]interface{}

	// Raw is the raw frontmatter content.
	Raw string

	// EndLine is the line where frontmatter ends (1-indexed).
	EndLine int
}

// FrontmatterBounds returns the opening and closing frontmatter line indices.
// It only detects frontmatter when the first line is '---'.
// If frontmatter is present but unclosed, endLine is -1.
func FrontmatterBounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0, -1, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return 0, i, true
		}
	}

	return 0, -1, true
}

// ParseFrontmatter parses YAML frontmatter from markdown content.
// Returns nil if no frontmatter is found.
func ParseFrontmatter(content string) (*Frontmatter, error) {
	lines := strings.Split(content, "\n")

	_, endLine, ok := FrontmatterBounds(lines)
	if !ok || endLine == -1 {
		return nil, nil
	}

	raw := strings.Join(lines[1:endLine], "\n")

	var fields map[string]interface{}
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}
	// An empty document decodes to a nil map; it still shifts the body.
	if fields == nil {
		fields = map[string]interface{}{}
	}

	return &Frontmatter{
		Fields:  fields,
		Raw:     raw,
		EndLine: endLine + 1,
	}, nil
}

// Keys returns the field names in sorted order.
func (fm *Frontmatter) Keys() []string {
	if fm == nil {
		return nil
	}
	keys := make([]string, 0, len(fm.Fields))
	for k := range fm.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Body returns content with any frontmatter block removed, and the
// 1-indexed line the body starts on.
func Body(content string) (string, int) {
	lines := strings.Split(content, "\n")
	_, endLine, ok := FrontmatterBounds(lines)
	if !ok || endLine == -1 {
		return content, 1
	}
	return strings.Join(lines[endLine+1:], "\n"), endLine + 2
}
