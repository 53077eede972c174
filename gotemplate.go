package csvtool

import (
	"fmt"
	"io"
	"text/template"
)

// templateWriter executes a text/template once per row. The template's
// dot is the [Row], so {{index . 0}} is the first cell.
type templateWriter struct {
	w    io.Writer
	tmpl *template.Template
}

func newTemplateWriter(w io.Writer, tmplStr string) (*templateWriter, error) {
	tmpl, err := template.New("row").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
	}
	return &templateWriter{w: w, tmpl: tmpl}, nil
}

func (t *templateWriter) WriteRow(row Row) error {
	if err := t.tmpl.Execute(t.w, row); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.w)
	return err
}
