package output

import (
	"fmt"
	"io"
	"strings"
)

// Table renders aligned columns for text output.
type Table struct {
	headers []string
	rows    [][]string
	sep     string
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, sep: "  "}
}

// AddRow adds a row to the table. Short rows are padded.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the header, a dashed rule, then each row.
func (t *Table) Render(w io.Writer) error {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return nil
	}

	widths := t.widths()
	if len(t.headers) > 0 {
		rule := make([]string, len(widths))
		for i, n := range widths {
			rule[i] = strings.Repeat("-", n)
		}
		if err := t.line(w, t.headers, widths); err != nil {
			return err
		}
		if err := t.line(w, rule, widths); err != nil {
			return err
		}
	}

	for _, row := range t.rows {
		if err := t.line(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

// String returns the rendered table.
func (t *Table) String() string {
	var sb strings.Builder
	_ = t.Render(&sb)
	return sb.String()
}

func (t *Table) widths() []int {
	n := len(t.headers)
	for _, row := range t.rows {
		n = max(n, len(row))
	}

	widths := make([]int, n)
	for _, row := range append([][]string{t.headers}, t.rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}
	return widths
}

func (t *Table) line(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = fmt.Sprintf("%-*s", width, cell)
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, t.sep), " "))
	return err
}
