package aggregation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablens/domain/analysis"
	"tablens/domain/table"
	"tablens/internal/profiling"
	"tablens/internal/testkit"
)

func TestComputeFlatCategoryAmount(t *testing.T) {
	series := Compute(testkit.CategoryAmountTable(t), Request{XColumn: "category", Measures: []string{"amount"}})
	require.True(t, series.OK())
	require.Len(t, series.Points, 2)

	a, b := series.Points[0], series.Points[1]
	assert.Equal(t, "A", a.Key)
	assert.Equal(t, analysis.Aggregate{Count: 2, Sum: 30, Mean: 15}, a.Measures["amount"])
	assert.Equal(t, "B", b.Key)
	assert.Equal(t, analysis.Aggregate{Count: 1, Sum: 5, Mean: 5}, b.Measures["amount"])

	assert.Equal(t, map[string]float64{"amount": 15, "amount_sum": 30, "amount_count": 2}, a.Values)
	assert.Equal(t, 2, a.Count)
	assert.False(t, series.Truncated)
}

func TestComputeFlatUnknownKeyAndCoercion(t *testing.T) {
	tbl := testkit.Columns(t, []string{"k", "v"},
		[]table.Cell{table.Null(), table.Text(""), table.Number(1), table.Bool(true)},
		[]table.Cell{table.Number(4), table.Text("junk"), table.Text("2"), table.Number(3)},
	)

	series := Compute(tbl, Request{XColumn: "k", Measures: []string{"v"}})
	require.True(t, series.OK())
	require.Len(t, series.Points, 3)

	assert.Equal(t, analysis.UnknownKey, series.Points[0].Key)
	assert.Equal(t, analysis.Aggregate{Count: 2, Sum: 4, Mean: 2}, series.Points[0].Measures["v"])
	assert.Equal(t, "1", series.Points[1].Key)
	assert.Equal(t, "true", series.Points[2].Key)
}

func TestComputeFlatCountsSumToRows(t *testing.T) {
	tbl := testkit.ShoppingTable(t, 400)
	series := Compute(tbl, Request{XColumn: "category", Measures: []string{"amount", "quantity"}})
	require.True(t, series.OK())
	require.False(t, series.Truncated)

	total := 0
	for _, p := range series.Points {
		total += p.Count
		assert.Equal(t, p.Count, p.Measures["amount"].Count)
	}
	assert.Equal(t, tbl.Len(), total)
}

func TestComputeTruncatesToFirstSeen(t *testing.T) {
	keys := make([]string, 60)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%02d", 59-i)
	}
	ones := make([]float64, 60)
	for i := range ones {
		ones[i] = 1
	}
	tbl := testkit.Columns(t, []string{"key", "v"}, testkit.Texts(keys...), testkit.Numbers(ones...))

	series := Compute(tbl, Request{XColumn: "key", Measures: []string{"v"}})
	require.True(t, series.OK())
	assert.Len(t, series.Points, DefaultMaxPartitions)
	assert.True(t, series.Truncated)
	assert.Equal(t, 60, series.Partitions)
	assert.Equal(t, "k59", series.Points[0].Key)
	assert.Equal(t, "k10", series.Points[49].Key)

	small := Compute(tbl, Request{XColumn: "key", Measures: []string{"v"}, MaxPartitions: 5})
	assert.Len(t, small.Points, 5)
}

func TestComputePercentage(t *testing.T) {
	series := Compute(testkit.CategoryAmountTable(t), Request{XColumn: "category", Measures: []string{"amount"}, Percentage: true})
	require.True(t, series.OK())

	sum := 0.0
	for _, p := range series.Points {
		pct := p.Values[PercentageKey("amount")]
		require.NotNil(t, p.Measures["amount"].Percentage)
		assert.Equal(t, pct, *p.Measures["amount"].Percentage)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
	assert.InDelta(t, 30.0/35*100, series.Points[0].Values["amount_percentage"], 1e-9)
}

func TestComputePercentageZeroTotal(t *testing.T) {
	tbl := testkit.Columns(t, []string{"k", "v"}, testkit.Texts("a", "b"), testkit.Numbers(0, 0))
	series := Compute(tbl, Request{XColumn: "k", Measures: []string{"v"}, Percentage: true})
	for _, p := range series.Points {
		assert.Equal(t, 0.0, p.Values["v_percentage"])
	}
}

func TestComputePercentageNegativeTotal(t *testing.T) {
	tbl := testkit.Columns(t, []string{"k", "v"}, testkit.Texts("a", "b"), testkit.Numbers(5, -20))
	series := Compute(tbl, Request{XColumn: "k", Measures: []string{"v"}, Percentage: true})
	require.Len(t, series.Points, 2)
	for _, p := range series.Points {
		assert.Equal(t, 0.0, p.Values["v_percentage"], p.Key)
	}
}

func TestComputeGroupedPivotsKeys(t *testing.T) {
	tbl := testkit.Columns(t, []string{"month", "region", "sales", "units"},
		testkit.Texts("Jan", "Jan", "Jan", "Feb"),
		[]table.Cell{table.Text("N"), table.Text("S"), table.Text("N"), table.Null()},
		testkit.Numbers(10, 20, 30, 5),
		testkit.Numbers(1, 2, 3, 4),
	)

	series := Compute(tbl, Request{XColumn: "month", Measures: []string{"sales", "units"}, GroupColumn: "region", Percentage: true})
	require.True(t, series.OK())
	assert.False(t, series.Percentage)
	assert.Equal(t, []string{"N", "S", analysis.UnknownKey}, series.GroupKeys)
	require.Len(t, series.Points, 2)

	jan := series.Points[0]
	assert.Equal(t, "Jan", jan.Key)
	assert.Equal(t, map[string]float64{
		"N_sales": 20, "N_units": 2,
		"S_sales": 20, "S_units": 2,
	}, jan.Values)
	assert.Nil(t, jan.Measures)

	feb := series.Points[1]
	assert.Equal(t, map[string]float64{"Unknown_sales": 5, "Unknown_units": 4}, feb.Values)
}

func TestComputeValidation(t *testing.T) {
	tbl := testkit.CategoryAmountTable(t)
	tests := []struct {
		name string
		req  Request
	}{
		{"missing x", Request{XColumn: "nope", Measures: []string{"amount"}}},
		{"no measures", Request{XColumn: "category"}},
		{"missing measure", Request{XColumn: "category", Measures: []string{"nope"}}},
		{"missing group", Request{XColumn: "category", Measures: []string{"amount"}, GroupColumn: "nope"}},
		{"group equals x", Request{XColumn: "category", Measures: []string{"amount"}, GroupColumn: "category"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := Compute(tbl, tt.req)
			assert.Equal(t, analysis.OutcomeInvalidColumnSelection, series.Outcome)
			assert.Empty(t, series.Points)
		})
	}

	empty := Compute(testkit.EmptyTable(t), Request{XColumn: "category", Measures: []string{"amount"}})
	assert.Equal(t, analysis.OutcomeEmptyTable, empty.Outcome)
}

func TestPie(t *testing.T) {
	tbl := testkit.Columns(t, []string{"k", "v"}, testkit.Texts("a", "b", "c", "b"), testkit.Numbers(1, 5, 3, 5))

	series := Compute(tbl, Request{XColumn: "k", Measures: []string{"v"}})
	slices := Pie(series, 2)
	assert.Equal(t, []analysis.PieSlice{{Name: "b", Value: 5}, {Name: "c", Value: 3}}, slices)

	pct := Compute(tbl, Request{XColumn: "k", Measures: []string{"v"}, Percentage: true})
	slices = Pie(pct, 0)
	require.Len(t, slices, 3)
	assert.InDelta(t, 10.0/14*100, slices[0].Value, 1e-9)

	grouped := Compute(tbl, Request{XColumn: "k", Measures: []string{"v"}, GroupColumn: "v"})
	assert.Empty(t, Pie(grouped, 0))
}

func TestDefaultRequest(t *testing.T) {
	req, ok := DefaultRequest(testkit.CategoryAmountTable(t), profiling.ChartOptions)
	require.True(t, ok)
	assert.Equal(t, Request{XColumn: "category", Measures: []string{"amount"}}, req)

	req, ok = DefaultRequest(testkit.ReviewsTable(t), profiling.ChartOptions)
	assert.False(t, ok)
	assert.Equal(t, "review", req.XColumn)

	numericOnly := testkit.Columns(t, []string{"a", "b"}, testkit.Numbers(1, 2), testkit.Numbers(3, 4))
	req, ok = DefaultRequest(numericOnly, profiling.ChartOptions)
	require.True(t, ok)
	assert.Equal(t, "a", req.XColumn)
}
