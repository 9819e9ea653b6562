package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = 2

// Table lines up columns with spaces. Widths are measured with lipgloss so
// styled cells align; the last column is never padded.
type Table struct {
	rows   [][]string
	widths []int
}

// NewTable returns a table with cols columns.
func NewTable(cols int) *Table {
	return &Table{widths: make([]int, cols)}
}

// AddRow appends a row. Missing cells are empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.widths))
	copy(row, cells)
	for i, cell := range row {
		t.widths[i] = max(t.widths[i], lipgloss.Width(cell))
	}
	t.rows = append(t.rows, row)
}

func (t *Table) String() string {
	var sb strings.Builder
	for _, row := range t.rows {
		last := len(row) - 1
		for i, cell := range row {
			sb.WriteString(cell)
			if i < last {
				sb.WriteString(strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell)+columnGap))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
