package csvtool_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/csvtool"
)

func TestDelimitedWriter(t *testing.T) {
	t.Parallel()
	mixed := csvtool.Row{
		csvtool.Str("a"), csvtool.Int(1), dec("2.5"),
		csvtool.Str("b,c"), csvtool.Str(`say "hi"`), csvtool.Absent(),
	}
	withDialect := func(f func(*csvtool.Dialect)) csvtool.Dialect {
		d := csvtool.DefaultDialect
		f(&d)
		return d
	}
	tests := map[string]struct {
		dialect csvtool.Dialect
		row     csvtool.Row
		want    string
	}{
		"minimal": {
			dialect: csvtool.DefaultDialect,
			row:     mixed,
			want:    `a,1,2.5,"b,c","say ""hi""",` + "\n",
		},
		"zero dialect is default": {
			row:  mixed,
			want: `a,1,2.5,"b,c","say ""hi""",` + "\n",
		},
		"all": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.Quoting = csvtool.QuoteAll }),
			row:     csvtool.Row{csvtool.Str("a"), csvtool.Int(1)},
			want:    `"a","1"` + "\n",
		},
		"nonnumeric": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.Quoting = csvtool.QuoteNonNumeric }),
			row:     csvtool.Row{csvtool.Str("a"), csvtool.Int(1), dec("2.5"), csvtool.Str("3")},
			want:    `"a",1,2.5,"3"` + "\n",
		},
		"none": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.Quoting = csvtool.QuoteNone }),
			row:     csvtool.Row{csvtool.Str(" pad"), csvtool.Str("#x"), csvtool.Int(1)},
			want:    " pad,#x,1\n",
		},
		"crlf": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.LineTerminator = "\r\n" }),
			row:     csvtool.Strings("a", "b"),
			want:    "a,b\r\n",
		},
		"tab delimiter": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.Delimiter = '\t' }),
			row:     csvtool.Strings("a b", "c,d", "e\tf"),
			want:    "a b\tc,d\t\"e\tf\"\n",
		},
		"custom quote": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.Quote = '\'' }),
			row:     csvtool.Strings("it's", "x,y"),
			want:    `'it''s','x,y'` + "\n",
		},
		"leading space and newline": {
			dialect: csvtool.DefaultDialect,
			row:     csvtool.Strings(" pad", "two\nlines", `\.`),
			want:    "\" pad\",\"two\nlines\",\"\\.\"\n",
		},
		"comment prefix": {
			dialect: withDialect(func(d *csvtool.Dialect) { d.Comment = '#' }),
			row:     csvtool.Strings("#tag", "a#b"),
			want:    `"#tag",a#b` + "\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			cw := csvtool.NewDelimitedWriter(&buf, tt.dialect)
			require.NoError(t, cw.WriteRow(tt.row))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDelimitedWriterQuoteNoneRejectsSpecialFields(t *testing.T) {
	t.Parallel()
	d := csvtool.DefaultDialect
	d.Quoting = csvtool.QuoteNone
	tests := map[string]csvtool.Row{
		"delimiter": csvtool.Strings("ok", "a,b"),
		"quote":     csvtool.Strings(`c"d`),
		"newline":   csvtool.Strings("two\nlines"),
		"cr":        csvtool.Strings("cr\r"),
	}
	for name, row := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			cw := csvtool.NewDelimitedWriter(&buf, d)
			err := cw.WriteRow(row)
			require.ErrorIs(t, err, csvtool.ErrInvalidDialect)
			require.ErrorIs(t, err, csvtool.ErrConfiguration)
			assert.Empty(t, buf.String())

			require.NoError(t, cw.WriteRow(csvtool.Strings("next")))
			assert.Equal(t, "next\n", buf.String())
		})
	}
}

func TestDelimitedWriterStreams(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cw := csvtool.NewDelimitedWriter(&buf, csvtool.DefaultDialect)
	require.NoError(t, cw.WriteRow(csvtool.Strings("a")))
	assert.Equal(t, "a\n", buf.String())
	require.NoError(t, cw.WriteRow(csvtool.Strings("b")))
	assert.Equal(t, "a\nb\n", buf.String())
}
