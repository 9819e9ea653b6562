package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when the width cannot be detected.
const DefaultTermWidth = 100

// Terminal describes an output stream.
type Terminal struct {
	Width int
	TTY   bool
}

// DetectTerminal inspects f. Pipes and files report DefaultTermWidth.
func DetectTerminal(f *os.File) Terminal {
	fd := f.Fd()
	t := Terminal{Width: DefaultTermWidth, TTY: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
	if !t.TTY {
		return t
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		t.Width = w
	}
	return t
}

// ContentWidth is the width left after a left margin, never below 20.
func (t Terminal) ContentWidth(margin int) int {
	return max(t.Width-margin, 20)
}
