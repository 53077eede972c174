package csvtool_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bjaus/csvtool"
)

func dec(s string) csvtool.Cell {
	return csvtool.Decimal(decimal.RequireFromString(s))
}

func TestCoerceString(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input string
		want  csvtool.Cell
	}{
		"integer":             {input: "4", want: csvtool.Int(4)},
		"integral decimal":    {input: "4.0000", want: csvtool.Int(4)},
		"decimal":             {input: "3.25", want: dec("3.25")},
		"word":                {input: "testing", want: csvtool.Str("testing")},
		"currency and commas": {input: "$123,456.789", want: dec("123456.789")},
		"euro":                {input: "€5", want: csvtool.Int(5)},
		"won":                 {input: "원1,000", want: csvtool.Int(1000)},
		"trailing point":      {input: "5.", want: csvtool.Int(5)},
		"leading point":       {input: ".5", want: dec("0.5")},
		"bare point":          {input: ".", want: csvtool.Str(".")},
		"empty":               {input: "", want: csvtool.Str("")},
		"commas only":         {input: ",,", want: csvtool.Str(",,")},
		"currency only":       {input: "$", want: csvtool.Str("$")},
		"negative":            {input: "-5", want: csvtool.Str("-5")},
		"exponent":            {input: "1e5", want: csvtool.Str("1e5")},
		"two points":          {input: "1.2.3", want: csvtool.Str("1.2.3")},
		"trailing currency":   {input: "5$", want: csvtool.Str("5$")},
		"inner space":         {input: "1 000", want: csvtool.Str("1 000")},
		"leading zeros":       {input: "007", want: csvtool.Int(7)},
		"beyond int64":        {input: "99999999999999999999", want: dec("99999999999999999999")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := csvtool.CoerceString(tt.input)
			assert.True(t, tt.want.Equal(got), "got %v (kind %d), want %v (kind %d)", got, got.Kind(), tt.want, tt.want.Kind())
		})
	}
}

func TestCoercePassesNumbersThrough(t *testing.T) {
	t.Parallel()
	for _, c := range []csvtool.Cell{csvtool.Int(7), dec("2.5"), csvtool.Absent()} {
		assert.True(t, c.Equal(csvtool.Coerce(c)))
	}
}

func TestCoerceIdempotent(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"4", "4.0000", "3.25", "testing", "$123,456.789", "0.10", "5.", ".",
		"", "1,2,3", "£0.000001", "99999999999999999999.5", "abc123", "  7",
	}
	for _, in := range inputs {
		once := csvtool.CoerceString(in)
		twice := csvtool.CoerceString(once.String())
		assert.True(t, once.Equal(twice), "input %q: %v then %v", in, once, twice)
	}
}
