package csvtool_test

import (
	"bytes"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bjaus/csvtool"
)

func collect(t *testing.T, rows iter.Seq2[csvtool.Row, error]) ([][]string, error) {
	t.Helper()
	var out [][]string
	for row, err := range rows {
		if err != nil {
			return out, err
		}
		out = append(out, row.Strings())
	}
	return out, nil
}

func TestParseInputFormat(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"csv", "excel", "shell"} {
		f, err := csvtool.ParseInputFormat(name)
		require.NoError(t, err)
		assert.Equal(t, csvtool.InputFormat(name), f)
	}
	_, err := csvtool.ParseInputFormat("xml")
	require.ErrorIs(t, err, csvtool.ErrUnsupportedFormat)
}

func TestReadDelimited(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		dialect string
		want    [][]string
	}{
		"ragged records": {
			input: "a,b\n1,\"x,y\"\n3\n",
			want:  [][]string{{"a", "b"}, {"1", "x,y"}, {"3"}},
		},
		"semicolon": {
			input:   "a;b\n1;2\n",
			dialect: "delimiter=;",
			want:    [][]string{{"a", "b"}, {"1", "2"}},
		},
		"comments and initial space": {
			input:   "# note\na, b\n",
			dialect: "comment=# skipinitialspace=true",
			want:    [][]string{{"a", "b"}},
		},
		"crlf input": {
			input: "a,b\r\nc,d\r\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		"empty": {
			input: "",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d, err := csvtool.ParseDialect(tt.dialect)
			require.NoError(t, err)
			rows, err := csvtool.ReadDelimited(strings.NewReader(tt.input), d)
			require.NoError(t, err)
			got, err := collect(t, rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadDelimitedLeavesStrings(t *testing.T) {
	t.Parallel()
	rows, err := csvtool.ReadDelimited(strings.NewReader("42\n"), csvtool.Dialect{})
	require.NoError(t, err)
	for row, err := range rows {
		require.NoError(t, err)
		assert.Equal(t, csvtool.KindString, row[0].Kind())
	}
}

func TestReadDelimitedErrors(t *testing.T) {
	t.Parallel()

	d := csvtool.DefaultDialect
	d.Quote = '\''
	_, err := csvtool.ReadDelimited(strings.NewReader(""), d)
	require.ErrorIs(t, err, csvtool.ErrInvalidDialect)

	rows, err := csvtool.ReadDelimited(strings.NewReader("a,b\n\"open,c\n"), csvtool.DefaultDialect)
	require.NoError(t, err)
	got, err := collect(t, rows)
	require.Error(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestReadShell(t *testing.T) {
	t.Parallel()
	input := "name 'full name' \"x y\"\nbolt 1,200 2.5\n"

	got, err := collect(t, csvtool.ReadShell(strings.NewReader(input), false))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "full name", "x y"}, {"bolt", "1,200", "2.5"}}, got)

	var kinds []csvtool.Kind
	for row, err := range csvtool.ReadShell(strings.NewReader(input), true) {
		require.NoError(t, err)
		for _, c := range row {
			kinds = append(kinds, c.Kind())
		}
	}
	assert.Equal(t, []csvtool.Kind{
		csvtool.KindString, csvtool.KindString, csvtool.KindString,
		csvtool.KindString, csvtool.KindInt, csvtool.KindDecimal,
	}, kinds)
}

func TestReadShellUnclosedQuote(t *testing.T) {
	t.Parallel()
	got, err := collect(t, csvtool.ReadShell(strings.NewReader("ok\n'open\n"), false))
	require.ErrorIs(t, err, csvtool.ErrInputFormat)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, [][]string{{"ok"}}, got)
}

func workbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"name", "age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Alice", 30}))
	_, err := f.NewSheet("Prices")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Prices", "A1", &[]any{"tea", "3.50"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadSpreadsheet(t *testing.T) {
	t.Parallel()
	data := workbook(t)
	tests := map[string]struct {
		sheet string
		want  [][]string
	}{
		"first sheet": {
			want: [][]string{{"name", "age"}, {"Alice", "30"}},
		},
		"by index": {
			sheet: "1",
			want:  [][]string{{"tea", "3.50"}},
		},
		"by name": {
			sheet: "Prices",
			want:  [][]string{{"tea", "3.50"}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rows, err := csvtool.ReadSpreadsheet(bytes.NewReader(data), tt.sheet)
			require.NoError(t, err)
			got, err := collect(t, rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSpreadsheetErrors(t *testing.T) {
	t.Parallel()
	data := workbook(t)
	for _, sheet := range []string{"Missing", "2", "-1"} {
		_, err := csvtool.ReadSpreadsheet(bytes.NewReader(data), sheet)
		require.ErrorIs(t, err, csvtool.ErrWorksheetNotFound, "sheet %q", sheet)
		require.ErrorIs(t, err, csvtool.ErrInputFormat)
	}

	_, err := csvtool.ReadSpreadsheet(strings.NewReader("not a workbook"), "")
	require.ErrorIs(t, err, csvtool.ErrUnreadableSpreadsheet)
}

func TestOpen(t *testing.T) {
	t.Parallel()
	rows, err := csvtool.Open(strings.NewReader("a b\n"), csvtool.InputShell, csvtool.ReaderOptions{})
	require.NoError(t, err)
	got, err := collect(t, rows)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, got)

	rows, err = csvtool.Open(bytes.NewReader(workbook(t)), csvtool.InputExcel, csvtool.ReaderOptions{Worksheet: "Prices"})
	require.NoError(t, err)
	got, err = collect(t, rows)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"tea", "3.50"}}, got)

	_, err = csvtool.Open(strings.NewReader(""), csvtool.InputFormat("xml"), csvtool.ReaderOptions{})
	require.ErrorIs(t, err, csvtool.ErrUnsupportedFormat)
}
