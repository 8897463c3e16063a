// Package correlation computes Pearson correlation matrices and single-pair
// scatter regressions over numeric columns.
package correlation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"tablens/domain/analysis"
	"tablens/domain/table"
)

// Strength thresholds on |r|.
const (
	StrongThreshold   = 0.8
	ModerateThreshold = 0.5
	WeakThreshold     = 0.3
)

// Classify buckets a correlation coefficient.
func Classify(r float64) analysis.Strength {
	abs := math.Abs(r)
	switch {
	case abs >= StrongThreshold:
		return analysis.StrengthStrong
	case abs >= ModerateThreshold:
		return analysis.StrengthModerate
	case abs >= WeakThreshold:
		return analysis.StrengthWeak
	default:
		return analysis.StrengthNone
	}
}

// DirectionOf returns the sign of r.
func DirectionOf(r float64) analysis.Direction {
	switch {
	case r > 0:
		return analysis.DirectionPositive
	case r < 0:
		return analysis.DirectionNegative
	default:
		return analysis.DirectionNone
	}
}

// Pearson computes r = (nΣxy − ΣxΣy) / sqrt((nΣx² − (Σx)²)(nΣy² − (Σy)²))
// in its centred two-pass form. Fewer than two pairs, or zero variance on
// either side, yields 0. The result is clamped to [-1, 1] against rounding
// drift.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0
	}
	if !hasVariance(x) || !hasVariance(y) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// hasVariance reports whether x holds at least two distinct values.
// Comparing values exactly avoids the rounding noise of n·Σx² − (Σx)².
func hasVariance(x []float64) bool {
	if len(x) < 2 {
		return false
	}
	for _, v := range x[1:] {
		if v != x[0] {
			return true
		}
	}
	return false
}

// Matrix computes r for every ordered pair of columns, including each column
// with itself. Cells that do not parse are coerced to 0 so no row is dropped.
// Each unordered pair is computed once and mirrored, so the matrix is
// symmetric; the diagonal is 1 for columns with variance, else 0.
func Matrix(t *table.Table, columns []string) analysis.CorrelationMatrix {
	columns = dedupe(columns)
	result := analysis.CorrelationMatrix{
		Columns: columns,
		Values:  map[string]map[string]float64{},
		Pairs:   []analysis.CorrelationPair{},
	}
	if t.IsEmpty() {
		result.Status = analysis.EmptyTable()
		return result
	}
	for _, c := range columns {
		if !t.Has(c) {
			result.Status = analysis.InvalidSelection("column %q does not exist", c)
			return result
		}
	}
	if len(columns) < 2 {
		result.Status = analysis.InsufficientData("correlation needs at least 2 numeric columns, got %d", len(columns))
		return result
	}

	series := make([][]float64, len(columns))
	for i, c := range columns {
		series[i] = lenientSeries(t, c)
		result.Values[c] = make(map[string]float64, len(columns))
	}

	for i, a := range columns {
		if hasVariance(series[i]) {
			result.Values[a][a] = 1
		} else {
			result.Values[a][a] = 0
		}
		for j := i + 1; j < len(columns); j++ {
			b := columns[j]
			r := Pearson(series[i], series[j])
			result.Values[a][b] = r
			result.Values[b][a] = r
			result.Pairs = append(result.Pairs, analysis.CorrelationPair{
				A:         a,
				B:         b,
				R:         r,
				Strength:  Classify(r),
				Direction: DirectionOf(r),
			})
		}
	}

	sort.SliceStable(result.Pairs, func(i, j int) bool {
		return math.Abs(result.Pairs[i].R) > math.Abs(result.Pairs[j].R)
	})
	result.Status = analysis.Ok()
	return result
}

func lenientSeries(t *table.Table, column string) []float64 {
	cells, _ := t.Column(column)
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = table.Coerce(c)
	}
	return out
}

func dedupe(columns []string) []string {
	seen := make(map[string]struct{}, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
