package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// codeTheme is the chroma style used for fenced code in notes.
const codeTheme = "monokai"

// RenderMarkdown renders a note body for the terminal, wrapped at width.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(noteMarkdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// noteMarkdownStyle is glamour's dark style with plain underlined headings
// in the accent color and a fixed code theme.
func noteMarkdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig

	var accent *string
	if color, ok := AccentColor(); ok {
		accent = &color
	}
	underline := true

	style.Document.Margin = uintPtr(MarkdownRenderMargin)
	style.Heading.Color = accent
	style.H1 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# ", Underline: &underline}}
	style.H2 = ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## ", Underline: &underline}}
	style.CodeBlock.Chroma = nil
	style.CodeBlock.Theme = codeTheme
	return style
}

func uintPtr(v uint) *uint { return &v }
