// Command csvtool reads tabular data on standard input, reshapes it, and
// writes it to standard output as CSV, shell assignments, a table, or
// Markdown.
package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Err == nil {
			os.Exit(exitErr.Code)
		}
		errorColor := color.New(color.FgRed, color.Bold)
		_, _ = errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
