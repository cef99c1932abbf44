package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultGutter is the padding added to each column beyond its widest cell.
const DefaultGutter = 2

// Table lays out rows of pre-formatted cells in left-aligned columns.
//
// Column widths are derived on every call from the header and the rows
// currently in the table, so two tables never influence each other.
type Table struct {
	Header []string
	Rows   [][]string
	Gutter int
}

// NewTable creates a table with the given header and [DefaultGutter].
func NewTable(header ...string) *Table {
	return &Table{Header: header, Gutter: DefaultGutter}
}

// Append adds a row. Rows are cut or padded with empty cells to the header's
// arity.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Header))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Widths returns the rendered width of each column: the widest of the header
// and every cell in that column, plus the gutter.
func (t *Table) Widths() []int {
	gutter := max(t.Gutter, 0)
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}
	for i := range widths {
		widths[i] += gutter
	}
	return widths
}

// Lines returns the header line followed by one line per row, each cell
// padded to its column width.
func (t *Table) Lines() []string {
	widths := t.Widths()
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, formatRow(t.Header, widths))
	for _, row := range t.Rows {
		lines = append(lines, formatRow(row, widths))
	}
	return lines
}

// Render joins [Table.Lines] with newlines, prefixing every line.
func (t *Table) Render(prefix string) string {
	return joinPrefixed(t.Lines(), prefix)
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", max(w-lipgloss.Width(cell), 0)))
	}
	return b.String()
}

func joinPrefixed(lines []string, prefix string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(prefix)
		b.WriteString(line)
	}
	return b.String()
}
