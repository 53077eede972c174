package csvtool

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter renders rows as a Markdown table. Rows are buffered
// until Flush. Cells are not padded.
type MarkdownWriter struct {
	w io.Writer
	// Headings is the number of leading rows followed by the Markdown
	// header separator. Zero means no separator.
	Headings int
	NoneAs   string
	rows     []Row
}

// NewMarkdownWriter returns a MarkdownWriter writing to w.
func NewMarkdownWriter(w io.Writer, headings int) *MarkdownWriter {
	return &MarkdownWriter{w: w, Headings: headings}
}

// WriteRow buffers row.
func (m *MarkdownWriter) WriteRow(row Row) error {
	m.rows = append(m.rows, substituteAbsent(row, m.NoneAs))
	return nil
}

// Flush writes the buffered rows and empties the buffer.
func (m *MarkdownWriter) Flush() error {
	rows := m.rows
	m.rows = nil
	numCols := colCount(rows)
	for r, row := range rows {
		if err := writeMarkdownRow(m.w, row); err != nil {
			return err
		}
		if m.Headings > 0 && r == m.Headings-1 {
			if _, err := fmt.Fprintln(m.w, strings.Repeat("|-", numCols)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, row Row) error {
	_, err := fmt.Fprintf(w, "| %s\n", strings.Join(row.Strings(), " | "))
	return err
}
