package csvtool

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Error kinds. Every error returned for bad options wraps
// ErrConfiguration; every error for undecodable input wraps ErrInputFormat.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrInputFormat   = errors.New("input format error")
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat     = fmt.Errorf("%w: unsupported format", ErrConfiguration)
	ErrInvalidFieldSpec      = fmt.Errorf("%w: invalid field spec", ErrConfiguration)
	ErrInvalidDialect        = fmt.Errorf("%w: invalid dialect", ErrConfiguration)
	ErrInvalidFilter         = fmt.Errorf("%w: invalid filter", ErrConfiguration)
	ErrInvalidTemplate       = fmt.Errorf("%w: invalid template", ErrConfiguration)
	ErrWorksheetNotFound     = fmt.Errorf("%w: worksheet not found", ErrInputFormat)
	ErrUnreadableSpreadsheet = fmt.Errorf("%w: unreadable spreadsheet", ErrInputFormat)
	ErrFilter                = errors.New("filter failed")
)

// Format represents an output format.
type Format string

const (
	CSV        Format = "csv"
	TSV        Format = "tsv"
	Shell      Format = "shell"
	Table      Format = "table"
	TableBox   Format = "table-box"
	TableASCII Format = "table-ascii"
	TableNoSep Format = "table-nosep"
	Markdown   Format = "markdown"
	JSON       Format = "json"
	JSONL      Format = "jsonl"
	YAML       Format = "yaml"
	HTML       Format = "html"
)

const goTemplatePrefix = "go-template="

var formats = []Format{CSV, TSV, Shell, Table, TableBox, TableASCII, TableNoSep, Markdown, JSON, JSONL, YAML, HTML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns a Format that renders each row using a Go
// text/template. The template's dot is the [Row].
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats and
// go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Buffered reports whether the format must see every row before it can
// render any of them.
func (f Format) Buffered() bool {
	switch f {
	case Table, TableBox, TableASCII, TableNoSep, Markdown, JSON, YAML, HTML:
		return true
	default:
		return false
	}
}

// Sink accepts rows for output.
type Sink interface {
	WriteRow(row Row) error
}

// Flusher is implemented by sinks that buffer rows until the input ends.
// Flush renders everything buffered so far and empties the buffer.
type Flusher interface {
	Flush() error
}

// WriterOptions configures the sink returned by [NewWriter].
type WriterOptions struct {
	// Dialect governs csv and tsv output; tsv always uses a tab delimiter.
	Dialect Dialect
	// Headings is the number of leading rows rendered as headings by the
	// table, markdown, and html formats.
	Headings int
	// NoneAs replaces absent cells in shell, table, markdown, and html
	// output.
	NoneAs string
}

// NewWriter returns the sink for format f writing to w.
func NewWriter(w io.Writer, f Format, opts WriterOptions) (Sink, error) {
	switch f {
	case CSV:
		return NewDelimitedWriter(w, opts.Dialect), nil
	case TSV:
		d := opts.Dialect
		if d == (Dialect{}) {
			d = DefaultDialect
		}
		d.Delimiter = '\t'
		return NewDelimitedWriter(w, d), nil
	case Shell:
		return &ShellWriter{w: w, NoneAs: opts.NoneAs}, nil
	case Table, TableBox:
		return NewTableWriter(w, StyleBox, opts.Headings, opts.NoneAs), nil
	case TableASCII:
		return NewTableWriter(w, StyleASCII, opts.Headings, opts.NoneAs), nil
	case TableNoSep:
		return NewTableWriter(w, StyleNoSep, opts.Headings, opts.NoneAs), nil
	case Markdown:
		return &MarkdownWriter{w: w, Headings: opts.Headings, NoneAs: opts.NoneAs}, nil
	case JSON:
		return &JSONWriter{w: w}, nil
	case JSONL:
		return &JSONLWriter{w: w}, nil
	case YAML:
		return &YAMLWriter{w: w}, nil
	case HTML:
		return &HTMLWriter{w: w, Headings: opts.Headings, NoneAs: opts.NoneAs}, nil
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			tw, err := newTemplateWriter(w, tmpl)
			if err != nil {
				return nil, err
			}
			return tw, nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
