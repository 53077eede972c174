// Package csvtool reshapes tabular records.
//
// Rows come from a reader ([ReadDelimited], [ReadSpreadsheet],
// [ReadShell], or [Open]), pass through a [Pipeline], and go to a [Sink]
// built by [NewWriter]. A [Driver] wires the three together.
//
// # Cells
//
// A [Cell] holds a string, an integer, a decimal, or the absent-value
// placeholder. Readers produce string cells; the pipeline promotes
// numeric-looking strings with [Coerce]:
//
//	csvtool.CoerceString("4.0000")       // Int(4)
//	csvtool.CoerceString("$123,456.789") // Decimal(123456.789)
//	csvtool.CoerceString("testing")      // Str("testing")
//
// # Pipeline
//
// Each data row is coerced, handed to the optional [Transform] (which may
// drop it), joined by a [JoinSpec], and finally narrowed by a keep list.
// Heading rows skip coercion and the transform. Joins run before keeps,
// and a join renumbers the fields after it.
//
// # FIELDSPEC Syntax
//
// A FIELDSPEC is one or more ranges separated by commas. Each range is
// "N" (the Nth field), "N-" (the Nth to the last field), "-M" (the first
// to the Mth field), or "N-M" (the Nth to the Mth field, inclusive).
// Fields are counted from 1. See [ParseFieldSpec] and [ParseJoinSpec].
//
// # Output Formats
//
//   - [CSV]: delimited text under a [Dialect]
//   - [TSV]: the same with a tab delimiter
//   - [Shell]: NAME=VALUE assignments; the first row names the variables
//   - [Table], [TableBox], [TableASCII], [TableNoSep]: fixed-width table
//   - [Markdown]: Markdown table
//   - [JSON], [JSONL], [YAML], [HTML], and [GoTemplate]
//
// Table, Markdown, JSON, YAML, and HTML sinks implement [Flusher]: they
// buffer every row and render when the input ends.
//
// # Errors
//
// Bad options wrap [ErrConfiguration]; undecodable input wraps
// [ErrInputFormat]. Short rows and dropped rows are not errors.
package csvtool
