package csvtool

import (
	"fmt"
	"html"
	"io"
)

// HTMLWriter renders rows as an HTML table. The first Headings rows form
// the <thead>; numeric cells are right-aligned.
type HTMLWriter struct {
	w        io.Writer
	Headings int
	NoneAs   string
	rows     []Row
}

// WriteRow buffers row.
func (h *HTMLWriter) WriteRow(row Row) error {
	h.rows = append(h.rows, substituteAbsent(row, h.NoneAs))
	return nil
}

// Flush writes the buffered rows and empties the buffer.
func (h *HTMLWriter) Flush() error {
	rows := h.rows
	h.rows = nil
	if len(rows) == 0 {
		return nil
	}
	head := rows[:min(h.Headings, len(rows))]
	body := rows[len(head):]

	if _, err := fmt.Fprintln(h.w, "<table>"); err != nil {
		return err
	}
	if len(head) > 0 {
		if err := writeHTMLSection(h.w, "thead", "th", head); err != nil {
			return err
		}
	}
	if err := writeHTMLSection(h.w, "tbody", "td", body); err != nil {
		return err
	}
	_, err := fmt.Fprintln(h.w, "</table>")
	return err
}

func writeHTMLSection(w io.Writer, section, cellTag string, rows []Row) error {
	if _, err := fmt.Fprintf(w, "  <%s>\n", section); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, cell := range row {
			if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", cellTag, alignStyle(cell), html.EscapeString(cell.String()), cellTag); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  </%s>\n", section)
	return err
}

func alignStyle(c Cell) string {
	if c.IsNumber() {
		return ` style="text-align: right"`
	}
	return ""
}
