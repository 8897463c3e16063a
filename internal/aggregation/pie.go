package aggregation

import (
	"sort"

	"tablens/domain/analysis"
	"tablens/domain/table"
	"tablens/internal/profiling"
)

// DefaultPieSlices bounds a pie chart.
const DefaultPieSlices = 10

// Pie turns the first measure of a flat series into slices sorted by value
// descending, keeping at most limit slices. In percentage mode the slice
// value is the percentage. Grouped series have no pie view.
func Pie(series analysis.ChartSeries, limit int) []analysis.PieSlice {
	if !series.OK() || series.GroupColumn != "" || len(series.Measures) == 0 {
		return []analysis.PieSlice{}
	}
	if limit <= 0 {
		limit = DefaultPieSlices
	}
	key := MeasureKey(series.Measures[0])
	if series.Percentage {
		key = PercentageKey(series.Measures[0])
	}

	slices := make([]analysis.PieSlice, 0, len(series.Points))
	for _, p := range series.Points {
		slices = append(slices, analysis.PieSlice{Name: p.Key, Value: p.Values[key]})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Value > slices[j].Value })
	if len(slices) > limit {
		slices = slices[:limit]
	}
	return slices
}

// DefaultRequest picks the initial chart: the first text column on x (or the
// first column when none is text) and the first numeric column as measure.
func DefaultRequest(t *table.Table, opts profiling.Options) (Request, bool) {
	if t.Width() == 0 {
		return Request{}, false
	}
	numeric, text := profiling.Split(profiling.Profile(t, opts))
	req := Request{XColumn: t.Headers[0]}
	if len(text) > 0 {
		req.XColumn = text[0]
	}
	if len(numeric) == 0 {
		return req, false
	}
	req.Measures = []string{numeric[0]}
	return req, true
}
