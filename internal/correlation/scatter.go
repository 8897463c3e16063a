package correlation

import (
	"gonum.org/v1/gonum/stat"

	"tablens/domain/analysis"
	"tablens/domain/table"
)

// Scatter builds the point cloud and regression for one (x, y) pair. Unlike
// Matrix, a row whose x or y does not parse is excluded instead of being
// coerced to 0. RSquared is r², the coefficient of determination for a
// single predictor.
func Scatter(t *table.Table, xCol, yCol string) analysis.ScatterRegression {
	result := analysis.ScatterRegression{X: xCol, Y: yCol, Points: []analysis.ScatterPoint{}}
	if t.IsEmpty() {
		result.Status = analysis.EmptyTable()
		return result
	}
	xIdx, yIdx := t.Index(xCol), t.Index(yCol)
	switch {
	case xIdx < 0:
		result.Status = analysis.InvalidSelection("column %q does not exist", xCol)
		return result
	case yIdx < 0:
		result.Status = analysis.InvalidSelection("column %q does not exist", yCol)
		return result
	case xIdx == yIdx:
		result.Status = analysis.InvalidSelection("x and y must be different columns")
		return result
	}

	xs := make([]float64, 0, t.Len())
	ys := make([]float64, 0, t.Len())
	for i, row := range t.Rows {
		x, okX := row[xIdx].Float()
		y, okY := row[yIdx].Float()
		if !okX || !okY {
			result.Excluded++
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
		result.Points = append(result.Points, analysis.ScatterPoint{X: x, Y: y, Row: i + 1})
	}

	if len(xs) < 2 {
		result.Status = analysis.InsufficientData("need at least 2 rows with numeric %q and %q, got %d", xCol, yCol, len(xs))
		return result
	}

	result.R = Pearson(xs, ys)
	result.RSquared = result.R * result.R
	result.Strength = Classify(result.R)
	result.Direction = DirectionOf(result.R)
	if hasVariance(xs) {
		result.Intercept, result.Slope = stat.LinearRegression(xs, ys, nil, false)
	} else {
		result.Intercept = stat.Mean(ys, nil)
	}
	result.Status = analysis.Ok()
	return result
}
