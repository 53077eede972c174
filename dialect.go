package csvtool

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Quoting is the policy a delimited writer uses to decide which fields to
// quote.
type Quoting int

const (
	// QuoteMinimal quotes only fields that would otherwise be misread.
	QuoteMinimal Quoting = iota
	// QuoteAll quotes every field.
	QuoteAll
	// QuoteNonNumeric quotes every field that is not a number.
	QuoteNonNumeric
	// QuoteNone never quotes.
	QuoteNone
)

var quotingNames = map[Quoting]string{
	QuoteMinimal:    "minimal",
	QuoteAll:        "all",
	QuoteNonNumeric: "nonnumeric",
	QuoteNone:       "none",
}

func (q Quoting) String() string {
	if s, ok := quotingNames[q]; ok {
		return s
	}
	return "Quoting(" + strconv.Itoa(int(q)) + ")"
}

// Dialect configures delimited-text reading and writing.
type Dialect struct {
	Delimiter rune
	Quote     rune
	Quoting   Quoting
	// LineTerminator ends each written record: "\n" or "\r\n".
	LineTerminator string
	// SkipInitialSpace ignores spaces following a delimiter when reading.
	SkipInitialSpace bool
	// Comment, when non-zero, marks lines the reader ignores.
	Comment rune
}

// DefaultDialect is comma-delimited, double-quoted, minimally quoted,
// with "\n" line endings.
var DefaultDialect = Dialect{
	Delimiter:      ',',
	Quote:          '"',
	Quoting:        QuoteMinimal,
	LineTerminator: "\n",
}

var dialectPresets = map[string]Dialect{
	"default":   DefaultDialect,
	"excel":     {Delimiter: ',', Quote: '"', Quoting: QuoteMinimal, LineTerminator: "\r\n"},
	"excel-tab": {Delimiter: '\t', Quote: '"', Quoting: QuoteMinimal, LineTerminator: "\r\n"},
	"unix":      {Delimiter: ',', Quote: '"', Quoting: QuoteAll, LineTerminator: "\n"},
}

var charNames = map[string]rune{
	"tab":       '\t',
	"comma":     ',',
	"semicolon": ';',
	"colon":     ':',
	"pipe":      '|',
	"space":     ' ',
}

// ParseDialect parses a dialect string: an optional preset name (default,
// excel, excel-tab, unix) followed by whitespace-separated key=value
// settings. Keys are delimiter, quote, quoting, lineterminator,
// skipinitialspace, and comment. Character values are a single
// character or one of tab, comma, semicolon, colon, pipe, space.
//
//	excel-tab quoting=nonnumeric
//	delimiter=pipe lineterminator=crlf
func ParseDialect(s string) (Dialect, error) {
	d := DefaultDialect
	fields := strings.Fields(s)
	if len(fields) > 0 && !strings.Contains(fields[0], "=") {
		preset, ok := dialectPresets[fields[0]]
		if !ok {
			return Dialect{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidDialect, fields[0])
		}
		d = preset
		fields = fields[1:]
	}
	for _, f := range fields {
		key, val, ok := strings.Cut(f, "=")
		if !ok {
			return Dialect{}, fmt.Errorf("%w: %q is not key=value", ErrInvalidDialect, f)
		}
		var err error
		switch strings.ToLower(key) {
		case "delimiter":
			d.Delimiter, err = parseDialectChar(val)
		case "quote", "quotechar":
			d.Quote, err = parseDialectChar(val)
		case "quoting":
			d.Quoting, err = parseQuoting(val)
		case "lineterminator":
			d.LineTerminator, err = parseLineTerminator(val)
		case "skipinitialspace":
			d.SkipInitialSpace, err = strconv.ParseBool(val)
		case "comment":
			d.Comment, err = parseDialectChar(val)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return Dialect{}, fmt.Errorf("%w: %s: %w", ErrInvalidDialect, f, err)
		}
	}
	if err := d.validate(); err != nil {
		return Dialect{}, err
	}
	return d, nil
}

func (d Dialect) validate() error {
	switch {
	case d.Delimiter == d.Quote:
		return fmt.Errorf("%w: delimiter and quote are both %q", ErrInvalidDialect, d.Delimiter)
	case d.Delimiter == '\r' || d.Delimiter == '\n':
		return fmt.Errorf("%w: delimiter cannot be a line break", ErrInvalidDialect)
	case d.Comment != 0 && (d.Comment == d.Delimiter || d.Comment == d.Quote):
		return fmt.Errorf("%w: comment character %q conflicts", ErrInvalidDialect, d.Comment)
	}
	return nil
}

// String renders the dialect in ParseDialect's key=value form.
func (d Dialect) String() string {
	parts := []string{
		"delimiter=" + dialectCharName(d.Delimiter),
		"quote=" + dialectCharName(d.Quote),
		"quoting=" + d.Quoting.String(),
		"lineterminator=" + lineTerminatorName(d.LineTerminator),
		"skipinitialspace=" + strconv.FormatBool(d.SkipInitialSpace),
	}
	if d.Comment != 0 {
		parts = append(parts, "comment="+dialectCharName(d.Comment))
	}
	return strings.Join(parts, " ")
}

func parseDialectChar(s string) (rune, error) {
	if r, ok := charNames[strings.ToLower(s)]; ok {
		return r, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("%q is not a single character", s)
	}
	return r, nil
}

func dialectCharName(r rune) string {
	for name, c := range charNames {
		if c == r {
			return name
		}
	}
	return string(r)
}

func parseQuoting(s string) (Quoting, error) {
	for q, name := range quotingNames {
		if strings.EqualFold(s, name) {
			return q, nil
		}
	}
	return 0, errors.New("quoting must be one of minimal, all, nonnumeric, none")
}

func parseLineTerminator(s string) (string, error) {
	switch strings.ToLower(s) {
	case "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	default:
		return "", errors.New("line terminator must be lf or crlf")
	}
}

func lineTerminatorName(s string) string {
	if s == "\r\n" {
		return "crlf"
	}
	return "lf"
}
