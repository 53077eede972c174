package csvtool

import (
	"encoding/json"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// Kind identifies what a [Cell] holds.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindDecimal
	KindAbsent
)

// Cell is a single field value: a string, an integer, a decimal, or the
// absent-value placeholder. The zero Cell is the empty string.
type Cell struct {
	kind Kind
	str  string
	num  int64
	dec  decimal.Decimal
}

// Str returns a string cell.
func Str(s string) Cell { return Cell{kind: KindString, str: s} }

// Int returns an integer cell.
func Int(n int64) Cell { return Cell{kind: KindInt, num: n} }

// Decimal returns a decimal cell.
func Decimal(d decimal.Decimal) Cell { return Cell{kind: KindDecimal, dec: d} }

// Absent returns the placeholder for a missing value. It is distinct from
// the empty string.
func Absent() Cell { return Cell{kind: KindAbsent} }

// Kind reports what the cell holds.
func (c Cell) Kind() Kind { return c.kind }

// IsNumber reports whether the cell holds an integer or a decimal.
func (c Cell) IsNumber() bool { return c.kind == KindInt || c.kind == KindDecimal }

// IsBlank reports whether the cell is absent or an empty string.
func (c Cell) IsBlank() bool {
	return c.kind == KindAbsent || (c.kind == KindString && c.str == "")
}

// Int64 returns the integer value and whether the cell is an integer.
func (c Cell) Int64() (int64, bool) { return c.num, c.kind == KindInt }

// Dec returns the numeric value of an integer or decimal cell.
func (c Cell) Dec() (decimal.Decimal, bool) {
	switch c.kind {
	case KindInt:
		return decimal.NewFromInt(c.num), true
	case KindDecimal:
		return c.dec, true
	default:
		return decimal.Zero, false
	}
}

// String renders the cell. Absent cells render as "".
func (c Cell) String() string {
	switch c.kind {
	case KindInt:
		return strconv.FormatInt(c.num, 10)
	case KindDecimal:
		return c.dec.String()
	case KindAbsent:
		return ""
	default:
		return c.str
	}
}

// Width returns the display width of the rendered cell.
func (c Cell) Width() int { return runewidth.StringWidth(c.String()) }

// Equal reports whether two cells hold the same kind and value.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindInt:
		return c.num == o.num
	case KindDecimal:
		return c.dec.Equal(o.dec)
	case KindAbsent:
		return true
	default:
		return c.str == o.str
	}
}

// Value returns the cell as a plain Go value: string, int64,
// decimal.Decimal, or nil.
func (c Cell) Value() any {
	switch c.kind {
	case KindInt:
		return c.num
	case KindDecimal:
		return c.dec
	case KindAbsent:
		return nil
	default:
		return c.str
	}
}

// MarshalJSON encodes numbers as JSON numbers and absent cells as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindInt, KindDecimal:
		return []byte(c.String()), nil
	case KindAbsent:
		return []byte("null"), nil
	default:
		return json.Marshal(c.str)
	}
}

// Row is an ordered sequence of cells. Rows carry no schema; stages
// downstream of a reader must tolerate short rows.
type Row []Cell

// Strings builds a row of string cells.
func Strings(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Str(v)
	}
	return row
}

// Strings renders every cell.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// Clone returns a copy of the row that shares no backing array.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal reports whether both rows hold equal cells in the same order.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
