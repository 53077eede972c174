package csvtool

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ShellWriter renders each row as a line of semicolon-separated shell
// variable assignments. The first row written names the variables; spaces
// in names become underscores. Names are used as given, so headings that
// are not valid identifiers produce lines a shell will reject.
type ShellWriter struct {
	w io.Writer
	// NoneAs is the value written for absent cells.
	NoneAs string
	vars   []string
}

// NewShellWriter returns a ShellWriter writing to w.
func NewShellWriter(w io.Writer) *ShellWriter {
	return &ShellWriter{w: w}
}

// WriteRow records row as the variable names on the first call and writes
// one line of assignments on every later call. Extra cells or names
// beyond the shorter of the two are ignored.
func (s *ShellWriter) WriteRow(row Row) error {
	if s.vars == nil {
		s.vars = make([]string, len(row))
		for i, c := range row {
			s.vars[i] = strings.ReplaceAll(c.String(), " ", "_")
		}
		return nil
	}
	n := min(len(s.vars), len(row))
	pairs := make([]string, n)
	for i := range n {
		val := row[i].String()
		if row[i].Kind() == KindAbsent {
			val = s.NoneAs
		}
		quoted, err := syntax.Quote(val, syntax.LangBash)
		if err != nil {
			return fmt.Errorf("shell value for %s: %w", s.vars[i], err)
		}
		pairs[i] = s.vars[i] + "=" + quoted
	}
	_, err := fmt.Fprintln(s.w, strings.Join(pairs, ";"))
	return err
}
