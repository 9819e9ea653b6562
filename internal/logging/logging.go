// Package logging builds the charmbracelet/log loggers used across packages.
//
// Loggers write to stderr: the lsp and mcp commands use stdout as their
// protocol channel.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger with a component prefix at the given level.
func New(prefix string, level log.Level) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, level)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that drops everything. Used as the default when
// a component is constructed without one.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Level resolves the effective level: debug wins, then the configured
// name, then info.
func Level(debug bool, configured string) log.Level {
	if debug {
		return log.DebugLevel
	}
	if configured = strings.TrimSpace(configured); configured != "" {
		if lvl, err := log.ParseLevel(configured); err == nil {
			return lvl
		}
	}
	return log.InfoLevel
}
