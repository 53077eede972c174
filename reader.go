package csvtool

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/anmitsu/go-shlex"
	"github.com/xuri/excelize/v2"
)

// InputFormat names an input encoding.
type InputFormat string

const (
	InputCSV   InputFormat = "csv"
	InputExcel InputFormat = "excel"
	InputShell InputFormat = "shell"
)

// ParseInputFormat parses an input format name.
func ParseInputFormat(s string) (InputFormat, error) {
	switch f := InputFormat(s); f {
	case InputCSV, InputExcel, InputShell:
		return f, nil
	default:
		return "", fmt.Errorf("%w: input %q", ErrUnsupportedFormat, s)
	}
}

// ReaderOptions configures the source returned by [Open].
type ReaderOptions struct {
	// Dialect governs csv input.
	Dialect Dialect
	// Worksheet selects a spreadsheet sheet by name or 0-based index.
	// Empty selects the first sheet.
	Worksheet string
	// CoerceShell coerces numeric-looking shell input cells, including
	// those of heading rows.
	CoerceShell bool
}

// Open returns the rows of r decoded as format f. Errors found while
// reading are yielded alongside a nil row and end the sequence.
func Open(r io.Reader, f InputFormat, opts ReaderOptions) (iter.Seq2[Row, error], error) {
	switch f {
	case InputCSV:
		return ReadDelimited(r, opts.Dialect)
	case InputExcel:
		return ReadSpreadsheet(r, opts.Worksheet)
	case InputShell:
		return ReadShell(r, opts.CoerceShell), nil
	default:
		return nil, fmt.Errorf("%w: input %q", ErrUnsupportedFormat, f)
	}
}

// ReadDelimited lazily decodes delimited text under d. Records may have
// differing numbers of fields. Reading supports only the double-quote
// quote character.
func ReadDelimited(r io.Reader, d Dialect) (iter.Seq2[Row, error], error) {
	if d == (Dialect{}) {
		d = DefaultDialect
	}
	if d.Quote != '"' && d.Quoting != QuoteNone {
		return nil, fmt.Errorf("%w: reader quote must be '\"', got %q", ErrInvalidDialect, d.Quote)
	}
	cr := csv.NewReader(r)
	cr.Comma = d.Delimiter
	cr.Comment = d.Comment
	cr.TrimLeadingSpace = d.SkipInitialSpace
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = d.Quoting == QuoteNone
	return func(yield func(Row, error) bool) {
		for {
			rec, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("read csv: %w", err))
				return
			}
			if !yield(Strings(rec...), nil) {
				return
			}
		}
	}, nil
}

// maxShellLine bounds a single line of shell-quoted input.
const maxShellLine = 1 << 20

// ReadShell splits each line of r into cells using POSIX shell quoting
// rules. When coerce is set, numeric-looking cells become numbers.
func ReadShell(r io.Reader, coerce bool) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxShellLine)
		line := 0
		for sc.Scan() {
			line++
			tokens, err := shlex.Split(sc.Text(), true)
			if err != nil {
				yield(nil, fmt.Errorf("%w: line %d: %w", ErrInputFormat, line, err))
				return
			}
			row := Strings(tokens...)
			if coerce {
				for i, c := range row {
					row[i] = Coerce(c)
				}
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(nil, fmt.Errorf("read shell input: %w", err))
		}
	}
}

// ReadSpreadsheet decodes an xlsx workbook from r and returns the rows of
// the selected sheet. sheet is a 0-based index when it parses as an
// integer and a sheet name otherwise; empty selects the first sheet.
func ReadSpreadsheet(r io.Reader, sheet string) (iter.Seq2[Row, error], error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadableSpreadsheet, err)
	}
	name, err := selectSheet(f.GetSheetList(), sheet)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return func(yield func(Row, error) bool) {
		defer f.Close()
		rows, err := f.Rows(name)
		if err != nil {
			yield(nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadableSpreadsheet, name, err))
			return
		}
		defer rows.Close()
		for rows.Next() {
			cols, err := rows.Columns()
			if err != nil {
				yield(nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadableSpreadsheet, name, err))
				return
			}
			if !yield(Strings(cols...), nil) {
				return
			}
		}
		if err := rows.Error(); err != nil {
			yield(nil, fmt.Errorf("%w: sheet %q: %w", ErrUnreadableSpreadsheet, name, err))
		}
	}, nil
}

func selectSheet(sheets []string, sel string) (string, error) {
	if sel == "" {
		if len(sheets) == 0 {
			return "", fmt.Errorf("%w: workbook has no sheets", ErrWorksheetNotFound)
		}
		return sheets[0], nil
	}
	if i, err := strconv.Atoi(sel); err == nil {
		if i < 0 || i >= len(sheets) {
			return "", fmt.Errorf("%w: worksheet %d (workbook has %d)", ErrWorksheetNotFound, i, len(sheets))
		}
		return sheets[i], nil
	}
	for _, s := range sheets {
		if s == sel {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: worksheet %q", ErrWorksheetNotFound, sel)
}
