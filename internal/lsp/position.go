package lsp

import (
	"unicode/utf8"

	"github.com/aidanlsb/mentions/internal/suggest"
)

// LSP columns count UTF-16 code units; the suggestion engine works in bytes.

// byteColumn converts a UTF-16 column on line to a byte offset, clamped to
// the line length.
func byteColumn(line string, utf16Col int) int {
	units := 0
	for i, r := range line {
		if units >= utf16Col {
			return i
		}
		units += utf16Len(r)
	}
	return len(line)
}

// utf16Column converts a byte offset on line to a UTF-16 column.
func utf16Column(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	units := 0
	for i := 0; i < byteCol; {
		r, size := utf8.DecodeRuneInString(line[i:])
		units += utf16Len(r)
		i += size
	}
	return units
}

func utf16Len(r rune) int {
	if r >= 0x10000 {
		return 2
	}
	return 1
}

// toEngine converts an LSP position to the engine's byte position.
func toEngine(doc suggest.LineAccessor, p Position) suggest.Position {
	return suggest.Position{Line: p.Line, Ch: byteColumn(doc.Line(p.Line), p.Character)}
}

// fromEngine converts an engine byte position to an LSP position.
func fromEngine(doc suggest.LineAccessor, p suggest.Position) Position {
	return Position{Line: p.Line, Character: utf16Column(doc.Line(p.Line), p.Ch)}
}
