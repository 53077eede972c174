package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bjaus/csvtool"
	"github.com/bjaus/csvtool/internal/config"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

const longHelp = `csvtool reads data from standard input as CSV (the default), an Excel
workbook, or lines of shell-quoted values, and writes it to standard output
as CSV (the default), shell variable assignments, a fixed-width table, or
Markdown. The reading and writing CSV dialects need not match.

Any values given as arguments form a row that is written before all input.
This is typically used to supply column headings. Arguments are parsed by
your shell, not as CSV.

With --outfmt=shell each output line is a list of NAME=VALUE assignments
separated by semicolons. The first row supplies the variable names, so it
must consist of valid environment variable names (spaces become
underscores).

With --outfmt=table or markdown, use --headings N to say how many leading
rows are headings; a divider follows them. "table" may be suffixed with
-box (the default), -ascii, or -nosep.

Heading rows are passed through as-is. Every other row has numeric-looking
values (including currency symbols and grouping commas) converted to
numbers, then runs through --filter, --join, and --keep in that order.

FIELDSPEC syntax: one or more ranges separated by commas. Each range is
"N" (the Nth field), "N-" (the Nth to the last field), or "N-M" (the Nth to
the Mth field, inclusive). Fields are counted from 1.

DIALECT syntax: an optional preset (default, excel, excel-tab, unix)
followed by key=value settings: delimiter, quote, quoting
(minimal|all|nonnumeric|none), lineterminator (lf|crlf),
skipinitialspace, comment. Characters may be named: tab, comma,
semicolon, colon, pipe, space.

Every flag may also be set with a CSVTOOL_<FLAG> environment variable or in
the file named by --config.`

func newRootCmd() *cobra.Command {
	var cfgFile string
	cmd := &cobra.Command{
		Use:   "csvtool [flags] [value ...]",
		Short: "Reshape tabular data between CSV, spreadsheet, shell, table, and Markdown forms",
		Long:  longHelp,
		Example: `  csvtool --headings 1 --outfmt table-ascii < people.csv
  csvtool --infmt excel --worksheet Sales --keep 1,3- < book.xlsx
  csvtool --join ' 1-2' --keep 2,1 'Full name' Email < contacts.csv
  csvtool --filter 'if .[2] > 100 then . else null end' < orders.csv`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), cfgFile)
			if err != nil {
				return err
			}
			return run(cmd, cfg, args)
		},
	}

	defaults := config.Defaults()
	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "read settings from `FILE` (yaml, toml, or json)")
	f.String("join", "", "join a FIELDSPEC into one field; the first character of `JOINSPEC` is the separator. Fields after a join are renumbered, and --keep sees the renumbered fields")
	f.String("filter", "", "jq `PROGRAM` run on each data row ($n is the row number, starting at 1); it must output the row, possibly modified, or null to drop it")
	f.String("keep", "", "output only these fields, in this order (`FIELDSPEC`)")
	f.Int("headings", defaults.Headings, "number of heading rows in the input")
	f.String("infmt", defaults.InFormat, "input format: csv, excel, or shell")
	f.String("reader", defaults.Reader, "CSV reader `DIALECT`")
	f.String("outfmt", defaults.OutFormat, "output format: csv, tsv, shell, table, table-box, table-ascii, table-nosep, markdown, json, jsonl, yaml, html, or go-template=TEMPLATE")
	f.String("writer", defaults.Writer, "CSV writer `DIALECT`")
	f.String("worksheet", "", "`NAME_or_NUMBER` (from 0) of the worksheet to read with --infmt=excel (default: the first)")
	f.String("none-as", "", "`TEXT` written for missing values in shell, table, markdown, and html output")
	f.Bool("debug", false, "turn on debugging output")
	f.Bool("test", false, "run internal tests and exit")

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), cfg.Debug)

	format, err := csvtool.ParseFormat(cfg.OutFormat)
	if err != nil {
		return err
	}
	writeDialect, err := csvtool.ParseDialect(cfg.Writer)
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	sink, err := csvtool.NewWriter(cmd.OutOrStdout(), format, csvtool.WriterOptions{
		Dialect:  writeDialect,
		Headings: cfg.Headings,
		NoneAs:   cfg.NoneAs,
	})
	if err != nil {
		return err
	}

	logger.Debug("options",
		"headings", cfg.Headings,
		"infmt", cfg.InFormat,
		"reader", cfg.Reader,
		"outfmt", format,
		"buffered", format.Buffered(),
		"writer", writeDialect.String(),
		"worksheet", cfg.Worksheet,
		"test", cfg.Test,
		"args", args,
	)

	if cfg.Test {
		if !selfTest(cmd.OutOrStdout()) {
			return &ExitError{Code: 1}
		}
		return nil
	}

	infmt, err := csvtool.ParseInputFormat(cfg.InFormat)
	if err != nil {
		return err
	}
	opts := csvtool.ReaderOptions{
		Worksheet:   cfg.Worksheet,
		CoerceShell: writeDialect.Quoting == csvtool.QuoteNonNumeric,
	}
	if infmt == csvtool.InputCSV {
		if opts.Dialect, err = csvtool.ParseDialect(cfg.Reader); err != nil {
			return err
		}
	}
	rows, err := csvtool.Open(cmd.InOrStdin(), infmt, opts)
	if err != nil {
		return err
	}

	driver := &csvtool.Driver{
		Pipeline: pipeline,
		Sink:     sink,
		Literal:  csvtool.Strings(args...),
		Logger:   logger,
	}
	return driver.Run(rows)
}

func buildPipeline(cfg *config.Config) (*csvtool.Pipeline, error) {
	p := &csvtool.Pipeline{Headings: cfg.Headings}
	if cfg.Join != "" {
		join, err := csvtool.ParseJoinSpec(cfg.Join)
		if err != nil {
			return nil, err
		}
		p.Join = join
	}
	if cfg.Keep != "" {
		keep, err := csvtool.ParseFieldSpec(cfg.Keep)
		if err != nil {
			return nil, err
		}
		p.Keep = keep
	}
	if cfg.Filter != "" {
		transform, err := csvtool.CompileFilter(cfg.Filter)
		if err != nil {
			return nil, err
		}
		p.Transform = transform
	}
	return p, nil
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "csvtool",
		Level:  log.WarnLevel,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
