package csvtool

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DelimitedWriter writes rows as delimited text under a [Dialect]. Each
// row is flushed to the underlying writer as soon as it is written.
//
// encoding/csv.Writer always quotes minimally with a double quote, so
// this writer applies the dialect's quote character and quoting policy
// itself while keeping encoding/csv's rules for what needs quoting.
type DelimitedWriter struct {
	w       *bufio.Writer
	dialect Dialect
}

// NewDelimitedWriter returns a DelimitedWriter writing to w.
func NewDelimitedWriter(w io.Writer, d Dialect) *DelimitedWriter {
	if d == (Dialect{}) {
		d = DefaultDialect
	}
	if d.LineTerminator == "" {
		d.LineTerminator = "\n"
	}
	return &DelimitedWriter{w: bufio.NewWriter(w), dialect: d}
}

// WriteRow writes one record. Absent cells are written as empty fields.
// With [QuoteNone], a field holding the delimiter, the quote character, or
// a line break is an error and nothing is written for the row.
func (cw *DelimitedWriter) WriteRow(row Row) error {
	if cw.dialect.Quoting == QuoteNone {
		for _, c := range row {
			if field := c.String(); fieldNeedsEscape(field, cw.dialect) {
				return fmt.Errorf("%w: field %q needs quoting but quoting is none", ErrInvalidDialect, field)
			}
		}
	}
	for i, c := range row {
		if i > 0 {
			if _, err := cw.w.WriteRune(cw.dialect.Delimiter); err != nil {
				return err
			}
		}
		if err := cw.writeField(c); err != nil {
			return err
		}
	}
	if _, err := cw.w.WriteString(cw.dialect.LineTerminator); err != nil {
		return err
	}
	return cw.w.Flush()
}

func (cw *DelimitedWriter) writeField(c Cell) error {
	field := c.String()
	if !cw.needsQuotes(c, field) {
		_, err := cw.w.WriteString(field)
		return err
	}
	q := string(cw.dialect.Quote)
	if _, err := cw.w.WriteString(q); err != nil {
		return err
	}
	if _, err := cw.w.WriteString(strings.ReplaceAll(field, q, q+q)); err != nil {
		return err
	}
	_, err := cw.w.WriteString(q)
	return err
}

func (cw *DelimitedWriter) needsQuotes(c Cell, field string) bool {
	switch cw.dialect.Quoting {
	case QuoteAll:
		return true
	case QuoteNonNumeric:
		return !c.IsNumber()
	case QuoteNone:
		return false
	default:
		return fieldNeedsQuotes(field, cw.dialect)
	}
}

// fieldNeedsEscape reports whether field cannot be written unquoted
// without being misread.
func fieldNeedsEscape(field string, d Dialect) bool {
	return strings.ContainsRune(field, d.Delimiter) || strings.ContainsRune(field, d.Quote) ||
		strings.ContainsAny(field, "\r\n")
}

// fieldNeedsQuotes mirrors encoding/csv: quote fields containing the
// delimiter, the quote character, or a line break, fields with a leading
// space, and the lone field `\.`.
func fieldNeedsQuotes(field string, d Dialect) bool {
	if field == "" {
		return false
	}
	if field == `\.` {
		return true
	}
	if fieldNeedsEscape(field, d) {
		return true
	}
	if d.Comment != 0 && strings.HasPrefix(field, string(d.Comment)) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(field)
	return unicode.IsSpace(r)
}
