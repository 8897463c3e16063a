// Package aggregation partitions rows by categorical keys and summarises
// numeric measures into chart-ready series.
package aggregation

import (
	"tablens/domain/analysis"
	"tablens/domain/table"
)

// DefaultMaxPartitions bounds how many x partitions are emitted. The first
// partitions encountered are kept; this is truncation, not a top-K.
const DefaultMaxPartitions = 50

// Request selects the columns of one chart.
type Request struct {
	XColumn     string   `json:"x_column"`
	Measures    []string `json:"measures"`
	GroupColumn string   `json:"group_column,omitempty"`
	// Percentage adds "<m>_percentage" keys; ignored when grouping.
	Percentage    bool `json:"percentage"`
	MaxPartitions int  `json:"max_partitions,omitempty"`
}

// Grouped reports whether the two-level path applies.
func (r Request) Grouped() bool { return r.GroupColumn != "" }

// Key returns the partition key of a cell: its display string, or
// analysis.UnknownKey when null or empty.
func Key(c table.Cell) string {
	if s := c.String(); s != "" {
		return s
	}
	return analysis.UnknownKey
}

// MeasureKey and the helpers below spell the consumer-facing value keys.
func MeasureKey(measure string) string      { return measure }
func SumKey(measure string) string          { return measure + "_sum" }
func CountKey(measure string) string        { return measure + "_count" }
func PercentageKey(measure string) string   { return measure + "_percentage" }
func GroupKey(group, measure string) string { return group + "_" + measure }

// Compute builds the chart series for req. Measure cells that do not parse
// count as 0.
func Compute(t *table.Table, req Request) analysis.ChartSeries {
	series := analysis.ChartSeries{
		XColumn:     req.XColumn,
		Measures:    req.Measures,
		GroupColumn: req.GroupColumn,
		Percentage:  req.Percentage && !req.Grouped(),
		Points:      []analysis.ChartPoint{},
		TotalRows:   t.Len(),
	}
	if t.IsEmpty() {
		series.Status = analysis.EmptyTable()
		return series
	}
	if status := validate(t, req); !status.OK() {
		series.Status = status
		return series
	}

	limit := req.MaxPartitions
	if limit <= 0 {
		limit = DefaultMaxPartitions
	}

	if req.Grouped() {
		computeGrouped(t, req, limit, &series)
	} else {
		computeFlat(t, req, limit, &series)
		if series.Percentage {
			applyPercentages(&series)
		}
	}
	series.Status = analysis.Ok()
	return series
}

func validate(t *table.Table, req Request) analysis.Status {
	if !t.Has(req.XColumn) {
		return analysis.InvalidSelection("x column %q does not exist", req.XColumn)
	}
	if len(req.Measures) == 0 {
		return analysis.InvalidSelection("at least one measure column is required")
	}
	for _, m := range req.Measures {
		if !t.Has(m) {
			return analysis.InvalidSelection("measure column %q does not exist", m)
		}
	}
	if req.Grouped() {
		if !t.Has(req.GroupColumn) {
			return analysis.InvalidSelection("group column %q does not exist", req.GroupColumn)
		}
		if req.GroupColumn == req.XColumn {
			return analysis.InvalidSelection("group column must differ from x column %q", req.XColumn)
		}
	}
	return analysis.Ok()
}

type measureAcc struct {
	count int
	sum   float64
}

func (a measureAcc) mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

type flatPartition struct {
	key      string
	rows     int
	measures []measureAcc
}

func measureIndexes(t *table.Table, measures []string) []int {
	idx := make([]int, len(measures))
	for i, m := range measures {
		idx[i] = t.Index(m)
	}
	return idx
}

func computeFlat(t *table.Table, req Request, limit int, series *analysis.ChartSeries) {
	xIdx := t.Index(req.XColumn)
	mIdx := measureIndexes(t, req.Measures)

	byKey := make(map[string]*flatPartition)
	var order []*flatPartition
	for _, row := range t.Rows {
		key := Key(row[xIdx])
		p, ok := byKey[key]
		if !ok {
			p = &flatPartition{key: key, measures: make([]measureAcc, len(mIdx))}
			byKey[key] = p
			order = append(order, p)
		}
		p.rows++
		for i, col := range mIdx {
			p.measures[i].count++
			p.measures[i].sum += table.Coerce(row[col])
		}
	}

	series.Partitions = len(order)
	if len(order) > limit {
		order = order[:limit]
		series.Truncated = true
	}

	for _, p := range order {
		point := analysis.ChartPoint{
			Key:      p.key,
			Count:    p.rows,
			Measures: make(map[string]analysis.Aggregate, len(req.Measures)),
			Values:   make(map[string]float64, 3*len(req.Measures)),
		}
		for i, m := range req.Measures {
			acc := p.measures[i]
			point.Measures[m] = analysis.Aggregate{Count: acc.count, Sum: acc.sum, Mean: acc.mean()}
			point.Values[MeasureKey(m)] = acc.mean()
			point.Values[SumKey(m)] = acc.sum
			point.Values[CountKey(m)] = float64(acc.count)
		}
		series.Points = append(series.Points, point)
	}
}

// applyPercentages normalises each measure's sum over the emitted partitions.
// A non-positive total yields 0 for every partition.
func applyPercentages(series *analysis.ChartSeries) {
	for _, m := range series.Measures {
		total := 0.0
		for _, p := range series.Points {
			total += p.Measures[m].Sum
		}
		for i := range series.Points {
			agg := series.Points[i].Measures[m]
			pct := 0.0
			if total > 0 {
				pct = agg.Sum / total * 100
			}
			agg.Percentage = &pct
			series.Points[i].Measures[m] = agg
			series.Points[i].Values[PercentageKey(m)] = pct
		}
	}
}

type groupedPartition struct {
	key    string
	rows   int
	groups map[string][]measureAcc
	order  []string
}

func computeGrouped(t *table.Table, req Request, limit int, series *analysis.ChartSeries) {
	xIdx := t.Index(req.XColumn)
	gIdx := t.Index(req.GroupColumn)
	mIdx := measureIndexes(t, req.Measures)

	byKey := make(map[string]*groupedPartition)
	var order []*groupedPartition
	seenGroups := make(map[string]struct{})
	series.GroupKeys = []string{}

	for _, row := range t.Rows {
		key := Key(row[xIdx])
		group := Key(row[gIdx])

		p, ok := byKey[key]
		if !ok {
			p = &groupedPartition{key: key, groups: make(map[string][]measureAcc)}
			byKey[key] = p
			order = append(order, p)
		}
		p.rows++

		accs, ok := p.groups[group]
		if !ok {
			accs = make([]measureAcc, len(mIdx))
			p.order = append(p.order, group)
		}
		for i, col := range mIdx {
			accs[i].count++
			accs[i].sum += table.Coerce(row[col])
		}
		p.groups[group] = accs

		if _, seen := seenGroups[group]; !seen {
			seenGroups[group] = struct{}{}
			series.GroupKeys = append(series.GroupKeys, group)
		}
	}

	series.Partitions = len(order)
	if len(order) > limit {
		order = order[:limit]
		series.Truncated = true
	}

	for _, p := range order {
		point := analysis.ChartPoint{
			Key:    p.key,
			Count:  p.rows,
			Values: make(map[string]float64, len(p.order)*len(req.Measures)),
		}
		for _, group := range p.order {
			accs := p.groups[group]
			for i, m := range req.Measures {
				point.Values[GroupKey(group, m)] = accs[i].mean()
			}
		}
		series.Points = append(series.Points, point)
	}
}
