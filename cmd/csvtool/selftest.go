package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/bjaus/csvtool"
)

type selfTestCase struct {
	name  string
	check func() (got, want string, ok bool)
}

func coerceCase(in string, want csvtool.Cell) selfTestCase {
	return selfTestCase{
		name: fmt.Sprintf("coerce %q", in),
		check: func() (string, string, bool) {
			got := csvtool.CoerceString(in)
			return describeCell(got), describeCell(want), got.Equal(want)
		},
	}
}

func fieldSpecCase(in string, want []csvtool.FieldRange) selfTestCase {
	return selfTestCase{
		name: fmt.Sprintf("fieldspec %q", in),
		check: func() (string, string, bool) {
			got, err := csvtool.ParseFieldSpec(in)
			if err != nil {
				return err.Error(), fmt.Sprint(want), false
			}
			return fmt.Sprint(got), fmt.Sprint(want), slices.Equal(got, want)
		},
	}
}

var selfTestCases = []selfTestCase{
	coerceCase("4", csvtool.Int(4)),
	coerceCase("4.0000", csvtool.Int(4)),
	coerceCase("3.25", csvtool.Decimal(decimal.RequireFromString("3.25"))),
	coerceCase("testing", csvtool.Str("testing")),
	coerceCase("$123,456.789", csvtool.Decimal(decimal.RequireFromString("123456.789"))),
	coerceCase(".", csvtool.Str(".")),
	fieldSpecCase("1", []csvtool.FieldRange{{Start: 0, End: 1}}),
	fieldSpecCase("2-", []csvtool.FieldRange{{Start: 1, End: csvtool.ToEnd}}),
	fieldSpecCase("1-3,5", []csvtool.FieldRange{{Start: 0, End: 3}, {Start: 4, End: 5}}),
}

// selfTest runs the built-in checks, reporting each to w, and reports
// whether all of them passed.
func selfTest(w io.Writer) bool {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	failed := 0
	for _, tc := range selfTestCases {
		got, want, ok := tc.check()
		if ok {
			_, _ = pass.Fprint(w, "PASS")
			_, _ = fmt.Fprintf(w, " %s\n", tc.name)
			continue
		}
		failed++
		_, _ = fail.Fprint(w, "FAIL")
		_, _ = fmt.Fprintf(w, " %s: got %s, want %s\n", tc.name, got, want)
	}
	_, _ = fmt.Fprintf(w, "%d of %d checks passed\n", len(selfTestCases)-failed, len(selfTestCases))
	return failed == 0
}

func describeCell(c csvtool.Cell) string {
	switch c.Kind() {
	case csvtool.KindInt:
		return "int " + c.String()
	case csvtool.KindDecimal:
		return "decimal " + c.String()
	case csvtool.KindAbsent:
		return "absent"
	default:
		return fmt.Sprintf("string %q", c.String())
	}
}
