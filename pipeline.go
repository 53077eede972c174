package csvtool

import "fmt"

// Transform rewrites a data row. n is the data row number, starting at 1
// after any heading rows. Returning false drops the row.
type Transform func(n int, row Row) (Row, bool, error)

// Pipeline is the ordered per-row transform: numeric coercion, the
// optional [Transform], joins, then keeps. The zero Pipeline passes rows
// through with coercion only.
type Pipeline struct {
	// Headings is the number of leading rows exempt from coercion and
	// the transform.
	Headings  int
	Transform Transform
	Join      *JoinSpec
	// Keep selects and orders output fields after joins have renumbered
	// them. Nil keeps every field.
	Keep []FieldRange
}

// IsHeading reports whether the 1-based row number n is a heading row.
func (p *Pipeline) IsHeading(n int) bool { return n <= p.Headings }

// Process runs row number n through the pipeline. Heading rows skip
// coercion and the transform but are still joined and kept, so they stay
// aligned with the data columns. The returned bool is false when the
// transform dropped the row. The caller's row is not modified.
func (p *Pipeline) Process(n int, row Row, heading bool) (Row, bool, error) {
	row = row.Clone()
	if !heading {
		for i, c := range row {
			row[i] = Coerce(c)
		}
		if p.Transform != nil {
			out, keep, err := p.Transform(n-p.Headings, row)
			if err != nil {
				return nil, false, fmt.Errorf("row %d: %w", n, err)
			}
			if !keep {
				return nil, false, nil
			}
			row = out.Clone()
		}
	}
	if p.Join != nil {
		row = p.Join.Apply(row)
	}
	if len(p.Keep) > 0 {
		row = KeepFields(row, p.Keep)
	}
	return row, true, nil
}
