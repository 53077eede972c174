package csvtool

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter renders all rows as one YAML sequence of sequences.
type YAMLWriter struct {
	w    io.Writer
	rows []Row
}

// WriteRow buffers row.
func (y *YAMLWriter) WriteRow(row Row) error {
	y.rows = append(y.rows, row.Clone())
	return nil
}

// Flush writes the buffered rows and empties the buffer.
func (y *YAMLWriter) Flush() error {
	rows := y.rows
	y.rows = nil
	if rows == nil {
		rows = []Row{}
	}
	enc := yaml.NewEncoder(y.w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

// MarshalYAML keeps strings that look like numbers quoted, emits decimals
// with their exact digits, and emits absent cells as null.
func (c Cell) MarshalYAML() (any, error) {
	switch c.kind {
	case KindInt:
		return c.num, nil
	case KindDecimal:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: c.dec.String()}, nil
	case KindAbsent:
		return nil, nil
	default:
		return c.str, nil
	}
}
