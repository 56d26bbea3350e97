package formula

import (
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// refPattern is the reference grammar: column letters then a 1-based
// row with no leading zero. Absolute markers ($) and sheet qualifiers
// are deliberately outside the grammar.
var refPattern = regexp.MustCompile(`^[A-Z]+[1-9][0-9]*$`)

// cellRef is a parsed cell address with 1-based column and row.
type cellRef struct {
	col int
	row int
}

// parseCellRef parses "A1"-style references, case-insensitively.
func parseCellRef(s string) (cellRef, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !refPattern.MatchString(s) {
		return cellRef{}, false
	}
	col, row, err := excelize.CellNameToCoordinates(s)
	if err != nil {
		return cellRef{}, false
	}
	return cellRef{col: col, row: row}, true
}

// addr renders the canonical upper-case address.
func (r cellRef) addr() string {
	name, err := excelize.CoordinatesToCellName(r.col, r.row)
	if err != nil {
		return ""
	}
	return name
}

// rangeRef is a rectangular inclusive span. Construction normalizes the
// corners so start is always the min corner and end the max, making the
// span order-independent ("B2:A1" equals "A1:B2").
type rangeRef struct {
	start cellRef
	end   cellRef
}

func newRangeRef(a, b cellRef) rangeRef {
	return rangeRef{
		start: cellRef{col: min(a.col, b.col), row: min(a.row, b.row)},
		end:   cellRef{col: max(a.col, b.col), row: max(a.row, b.row)},
	}
}

// parseRangeRef parses "A1:B2"-style ranges.
func parseRangeRef(s string) (rangeRef, bool) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return rangeRef{}, false
	}
	a, okA := parseCellRef(lo)
	b, okB := parseCellRef(hi)
	if !okA || !okB {
		return rangeRef{}, false
	}
	return newRangeRef(a, b), true
}

// cells enumerates every address in the span, row-major.
func (r rangeRef) cells() []cellRef {
	out := make([]cellRef, 0, (r.end.row-r.start.row+1)*(r.end.col-r.start.col+1))
	for row := r.start.row; row <= r.end.row; row++ {
		for col := r.start.col; col <= r.end.col; col++ {
			out = append(out, cellRef{col: col, row: row})
		}
	}
	return out
}
