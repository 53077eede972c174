package csvtool

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ToEnd marks a [FieldRange] that runs to the end of the row.
const ToEnd = -1

// FieldRange is a 0-based, half-open slice of a row. End is [ToEnd] when
// the range is unbounded.
type FieldRange struct {
	Start int
	End   int
}

// Bounds clamps the range to a row of n cells using slice semantics: an
// index past the end yields an empty slice at the end of the row.
func (r FieldRange) Bounds(n int) (lo, hi int) {
	lo = min(r.Start, n)
	hi = n
	if r.End != ToEnd {
		hi = min(r.End, n)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// String renders the range in 1-based FIELDSPEC form.
func (r FieldRange) String() string {
	switch {
	case r.End == ToEnd:
		return fmt.Sprintf("%d-", r.Start+1)
	case r.End == r.Start+1:
		return strconv.Itoa(r.End)
	default:
		return fmt.Sprintf("%d-%d", r.Start+1, r.End)
	}
}

// ParseFieldSpec parses a FIELDSPEC: comma-separated ranges of the form
// "N", "N-", "-M", or "N-M", counting fields from 1 with inclusive ends.
// Ranges are returned in the order given and are never merged, so a spec
// can reorder or repeat fields.
func ParseFieldSpec(spec string) ([]FieldRange, error) {
	var ranges []FieldRange
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		pieces := strings.Split(tok, "-")
		switch len(pieces) {
		case 1:
			n, err := fieldNumber(pieces[0])
			if err != nil {
				return nil, fmt.Errorf("%w %q: %w", ErrInvalidFieldSpec, tok, err)
			}
			ranges = append(ranges, FieldRange{Start: n - 1, End: n})
		case 2:
			r := FieldRange{Start: 0, End: ToEnd}
			if s := strings.TrimSpace(pieces[0]); s != "" {
				n, err := fieldNumber(s)
				if err != nil {
					return nil, fmt.Errorf("%w %q: %w", ErrInvalidFieldSpec, tok, err)
				}
				r.Start = n - 1
			}
			if s := strings.TrimSpace(pieces[1]); s != "" {
				m, err := fieldNumber(s)
				if err != nil {
					return nil, fmt.Errorf("%w %q: %w", ErrInvalidFieldSpec, tok, err)
				}
				if m <= r.Start {
					return nil, fmt.Errorf("%w %q: range runs backwards", ErrInvalidFieldSpec, tok)
				}
				r.End = m
			}
			ranges = append(ranges, r)
		default:
			return nil, fmt.Errorf("%w %q: too many '-'", ErrInvalidFieldSpec, tok)
		}
	}
	return ranges, nil
}

func fieldNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a field number", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("field numbers start at 1, got %d", n)
	}
	return n, nil
}

// KeepFields builds a new row from the cells covered by each range, in
// range order. Cells not covered by any range are dropped.
func KeepFields(row Row, ranges []FieldRange) Row {
	out := make(Row, 0, len(row))
	for _, r := range ranges {
		lo, hi := r.Bounds(len(row))
		out = append(out, row[lo:hi]...)
	}
	return out
}

// JoinSpec collapses field ranges into single cells.
type JoinSpec struct {
	// Sep is placed between joined values.
	Sep string
	// Ranges are held in application order, rightmost start first, so
	// joining one range never shifts a range still to be joined.
	Ranges []FieldRange
}

// ParseJoinSpec parses a JOINSPEC: a separator character followed by a
// FIELDSPEC, e.g. " 1-2" joins fields 1 and 2 with a space.
func ParseJoinSpec(spec string) (*JoinSpec, error) {
	r, size := utf8.DecodeRuneInString(spec)
	if size == 0 || r == utf8.RuneError {
		return nil, fmt.Errorf("%w %q: missing join separator", ErrInvalidFieldSpec, spec)
	}
	ranges, err := ParseFieldSpec(spec[size:])
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(ranges, func(a, b FieldRange) int {
		return cmp.Compare(b.Start, a.Start)
	})
	return &JoinSpec{Sep: string(r), Ranges: ranges}, nil
}

// Apply joins each range of row into one string cell. Blank cells (empty
// or absent) are left out of the joined value rather than producing empty
// segments. Fields after a joined range are renumbered. Apply may reuse
// row's backing array.
func (j *JoinSpec) Apply(row Row) Row {
	for _, r := range j.Ranges {
		lo, hi := r.Bounds(len(row))
		parts := make([]string, 0, hi-lo)
		for _, c := range row[lo:hi] {
			if !c.IsBlank() {
				parts = append(parts, c.String())
			}
		}
		row = slices.Replace(row, lo, hi, Str(strings.Join(parts, j.Sep)))
	}
	return row
}
