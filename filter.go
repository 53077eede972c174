package csvtool

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/itchyny/gojq"
	"github.com/shopspring/decimal"
)

// CompileFilter compiles a jq program into a [Transform]. The program sees
// the row as a JSON array in "." and the data row number in $n. Its first
// output decides the row's fate: an array replaces the row, while null,
// false, or no output at all drops it.
//
//	csvtool.CompileFilter(`if .[1] > 100 then . else null end`)
//	csvtool.CompileFilter(`[.[0], $n]`)
func CompileFilter(expr string) (Transform, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	code, err := gojq.Compile(q, gojq.WithVariables([]string{"$n"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}
	return func(n int, row Row) (Row, bool, error) {
		iter := code.Run(rowToJQ(row), n)
		v, ok := iter.Next()
		if !ok {
			return nil, false, nil
		}
		switch v := v.(type) {
		case error:
			return nil, false, fmt.Errorf("%w: %w", ErrFilter, v)
		case nil:
			return nil, false, nil
		case bool:
			if !v {
				return nil, false, nil
			}
			return nil, false, fmt.Errorf("%w: result must be an array or null, got true", ErrFilter)
		case []any:
			return rowFromJQ(v, row), true, nil
		default:
			return nil, false, fmt.Errorf("%w: result must be an array or null, got %T", ErrFilter, v)
		}
	}, nil
}

func rowToJQ(row Row) []any {
	out := make([]any, len(row))
	for i, c := range row {
		switch c.kind {
		case KindInt:
			out[i] = int(c.num)
		case KindDecimal:
			if c.dec.IsInteger() {
				out[i] = c.dec.BigInt()
			} else {
				out[i] = c.dec.InexactFloat64()
			}
		case KindAbsent:
			out[i] = nil
		default:
			out[i] = c.str
		}
	}
	return out
}

// rowFromJQ converts jq output back to cells. A float at the index of a
// decimal input cell that still equals that cell's float value is taken to
// be unchanged, and the exact input cell is kept.
func rowFromJQ(values []any, in Row) Row {
	row := make(Row, len(values))
	for i, v := range values {
		if f, ok := v.(float64); ok && i < len(in) &&
			in[i].kind == KindDecimal && in[i].dec.InexactFloat64() == f {
			row[i] = in[i]
			continue
		}
		row[i] = cellFromJQ(v)
	}
	return row
}

func cellFromJQ(v any) Cell {
	switch v := v.(type) {
	case nil:
		return Absent()
	case string:
		return Str(v)
	case int:
		return Int(int64(v))
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<63 {
			return Int(int64(v))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Str(strconv.FormatFloat(v, 'g', -1, 64))
		}
		return Decimal(decimal.NewFromFloat(v))
	case *big.Int:
		if v.IsInt64() {
			return Int(v.Int64())
		}
		return Decimal(decimal.NewFromBigInt(v, 0))
	case bool:
		return Str(strconv.FormatBool(v))
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Str(fmt.Sprint(v))
		}
		return Str(string(b))
	}
}
