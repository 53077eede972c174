package csvtool

import (
	"io"
	"iter"

	"github.com/charmbracelet/log"
)

// Driver streams rows from a source through a [Pipeline] into a [Sink].
// Streaming sinks see each row as soon as it is processed; a sink that
// implements [Flusher] renders only after the source is exhausted.
type Driver struct {
	Pipeline *Pipeline
	Sink     Sink
	// Literal, when non-empty, is written before any input row and
	// bypasses the pipeline.
	Literal Row
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Run reads rows until the source ends or fails. Output order matches
// input order, less any rows the pipeline drops.
func (d *Driver) Run(rows iter.Seq2[Row, error]) error {
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := d.Pipeline
	if p == nil {
		p = &Pipeline{}
	}

	if len(d.Literal) > 0 {
		logger.Debug("literal row", "row", d.Literal.Strings())
		if err := d.Sink.WriteRow(d.Literal.Clone()); err != nil {
			return err
		}
	}

	n := 0
	for row, err := range rows {
		if err != nil {
			return err
		}
		n++
		out, keep, err := p.Process(n, row, p.IsHeading(n))
		if err != nil {
			return err
		}
		if !keep {
			logger.Debug("row dropped", "n", n)
			continue
		}
		logger.Debug("row", "n", n, "cells", out.Strings())
		if err := d.Sink.WriteRow(out); err != nil {
			return err
		}
	}

	if f, ok := d.Sink.(Flusher); ok {
		logger.Debug("flushing buffered output", "rows", n)
		return f.Flush()
	}
	return nil
}
