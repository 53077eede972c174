package csvtool

import (
	"encoding/json"
	"io"
)

// JSONLWriter writes each row as a JSON array on its own line.
type JSONLWriter struct {
	w io.Writer
}

// WriteRow writes row immediately.
func (j *JSONLWriter) WriteRow(row Row) error {
	enc := json.NewEncoder(j.w)
	enc.SetEscapeHTML(false)
	if row == nil {
		row = Row{}
	}
	return enc.Encode(row)
}
