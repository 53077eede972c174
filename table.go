package csvtool

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// TableStyle controls the column separator and heading divider of a
// fixed-width table.
type TableStyle int

const (
	StyleBox   TableStyle = iota // │ columns, ─┼─ divider
	StyleASCII                   // | columns, -+- divider
	StyleNoSep                   // single space between columns, no divider
)

type tableChars struct {
	colSep string
	fill   string
}

var tableStyles = map[TableStyle]tableChars{
	StyleBox:   {colSep: " │ ", fill: "─"},
	StyleASCII: {colSep: " | ", fill: "-"},
	StyleNoSep: {colSep: " "},
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableWriter renders rows as a fixed-width table. Column widths depend
// on every row, so rows are buffered until Flush.
type TableWriter struct {
	w        io.Writer
	style    TableStyle
	headings int
	noneAs   string
	rows     []Row
}

// NewTableWriter returns a table writer. A divider line follows the
// headings-th row when headings > 0 and the style has one.
func NewTableWriter(w io.Writer, style TableStyle, headings int, noneAs string) *TableWriter {
	return &TableWriter{w: w, style: style, headings: headings, noneAs: noneAs}
}

// WriteRow buffers row.
func (t *TableWriter) WriteRow(row Row) error {
	t.rows = append(t.rows, substituteAbsent(row, t.noneAs))
	return nil
}

// Flush writes the buffered rows as a table and empties the buffer.
func (t *TableWriter) Flush() error {
	rows := t.rows
	t.rows = nil
	if len(rows) == 0 {
		return nil
	}
	chars := tableStyles[t.style]
	widths := computeWidths(colCount(rows), rows)

	var divider string
	if chars.fill != "" && t.headings > 0 {
		divider = dividerLine(chars, widths)
	}

	for r, row := range rows {
		if err := writeTableRow(t.w, row, widths, chars.colSep); err != nil {
			return err
		}
		if divider != "" && r == t.headings-1 {
			if _, err := fmt.Fprintln(t.w, divider); err != nil {
				return err
			}
		}
	}
	return nil
}

// dividerLine turns the column separator into a junction and fills each
// column with the style's fill character.
func dividerLine(chars tableChars, widths []int) string {
	junction := strings.NewReplacer(" ", chars.fill, "│", "┼", "|", "+").Replace(chars.colSep)
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat(chars.fill, width)
	}
	return strings.Join(parts, junction)
}

func writeTableRow(w io.Writer, row Row, widths []int, colSep string) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		cell := Str("")
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = formatTableCell(cell, width)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, colSep))
	return err
}

// formatTableCell right-justifies numbers and left-justifies everything
// else.
func formatTableCell(c Cell, width int) string {
	if c.IsNumber() {
		return alignCell(c.String(), width, AlignRight)
	}
	return alignCell(c.String(), width, AlignLeft)
}

func colCount(rows []Row) int {
	n := 0
	for _, row := range rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

func computeWidths(numCols int, rows []Row) []int {
	widths := make([]int, numCols)
	for _, row := range rows {
		for i, cell := range row {
			if w := cell.Width(); i < numCols && w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// substituteAbsent copies row with absent cells replaced by noneAs.
func substituteAbsent(row Row, noneAs string) Row {
	out := row.Clone()
	for i, c := range out {
		if c.Kind() == KindAbsent {
			out[i] = Str(noneAs)
		}
	}
	return out
}
