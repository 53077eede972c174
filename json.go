package csvtool

import (
	"encoding/json"
	"io"
)

// JSONWriter renders all rows as one JSON array of arrays. Numbers are
// JSON numbers and absent cells are null.
type JSONWriter struct {
	w    io.Writer
	rows []Row
}

// WriteRow buffers row.
func (j *JSONWriter) WriteRow(row Row) error {
	j.rows = append(j.rows, row.Clone())
	return nil
}

// Flush writes the buffered rows and empties the buffer.
func (j *JSONWriter) Flush() error {
	rows := j.rows
	j.rows = nil
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(j.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(rows)
}
