package ui

import (
	"fmt"

	"github.com/aidanlsb/mentions/internal/index"
)

// Status lines use symbols, not colors.

// Successf formats a message prefixed with a check mark.
func Successf(format string, args ...any) string {
	return "✓ " + fmt.Sprintf(format, args...)
}

// Warningf formats a message prefixed with a warning sign.
func Warningf(format string, args ...any) string {
	return "⚠ " + fmt.Sprintf(format, args...)
}

func Header(s string) string   { return Bold.Render(s) }
func FilePath(s string) string { return Accent.Render(s) }
func Hint(s string) string     { return Muted.Render(s) }

// Mention renders a name with its kind's marker, e.g. "@John".
func Mention(kind index.Kind, name string) string {
	return Accent.Render(string(kind.Marker())) + name
}

// Count returns "1 person", "3 people" and so on.
func Count(n int, singular, plural string) string {
	noun := plural
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", n, noun)
}
