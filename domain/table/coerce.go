package table

import (
	"math"
	"strconv"
	"strings"
)

// Float is the single numeric-coercion rule shared by every analysis.
// Numbers pass through, booleans map to 1/0, text parses permissively
// (surrounding whitespace ignored, decimal/scientific/hex/inf spellings as
// accepted by strconv). Null, blank text, nested content and non-finite
// results are not numeric.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		if math.IsNaN(c.n) || math.IsInf(c.n, 0) {
			return 0, false
		}
		return c.n, true
	case KindBool:
		if c.b {
			return 1, true
		}
		return 0, true
	case KindText:
		return ParseNumber(c.s)
	default:
		return 0, false
	}
}

// IsNumeric reports whether Float succeeds.
func (c Cell) IsNumeric() bool {
	_, ok := c.Float()
	return ok
}

// ParseNumber applies the permissive numeric-string test.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// strconv rejects plain hex integers such as "0x1F"
		lower := strings.ToLower(strings.TrimLeft(s, "+-"))
		if !strings.HasPrefix(lower, "0x") {
			return 0, false
		}
		i, ierr := strconv.ParseInt(s, 0, 64)
		if ierr != nil {
			return 0, false
		}
		f = float64(i)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Coerce is the lenient numeric view: anything that does not parse becomes 0.
// Used wherever one malformed cell must not drop a row.
func Coerce(c Cell) float64 {
	f, _ := c.Float()
	return f
}
