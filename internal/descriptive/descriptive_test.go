package descriptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablens/domain/analysis"
	"tablens/domain/table"
	"tablens/internal/profiling"
	"tablens/internal/testkit"
)

func TestComputeScores(t *testing.T) {
	result := Compute(testkit.ScoresTable(t), profiling.StatisticsOptions)
	require.True(t, result.OK())

	s, ok := result.Numeric["score"]
	require.True(t, ok)
	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 15.0, s.Sum)
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.InDelta(t, math.Sqrt2, s.Std, 1e-4)
	assert.Equal(t, 1.0, s.Mode)
	assert.Equal(t, analysis.KindNumeric, result.ColumnTypes["score"])
}

func TestSummarizeNumbersEvenMedianAndMode(t *testing.T) {
	s := SummarizeNumbers([]float64{4, 1, 3, 2, 3, 4})
	assert.Equal(t, 3.0, s.Median)
	// 4 and 3 both appear twice; 4 is seen first
	assert.Equal(t, 4.0, s.Mode)
	assert.Equal(t, analysis.NumericSummary{}, SummarizeNumbers(nil))
}

func TestSummarizeNumbersPopulationStd(t *testing.T) {
	s := SummarizeNumbers([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 2.0, s.Std, 1e-12)
}

func TestComputeTextColumn(t *testing.T) {
	tbl := testkit.Columns(t, []string{"city"},
		[]table.Cell{table.Text("Oslo"), table.Text("Rome"), table.Null(), table.Text("Rome"), table.Text("Oslo"), table.Text("")},
	)

	result := Compute(tbl, profiling.StatisticsOptions)
	s, ok := result.Text["city"]
	require.True(t, ok)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.UniqueCount)
	assert.Equal(t, "Oslo", s.ModeValue)
	assert.Equal(t, map[string]int{"Oslo": 2, "Rome": 2}, s.Frequency)
}

func TestComputeMixedColumnUsesParsableValues(t *testing.T) {
	cells := append(testkit.Numbers(1, 2, 3, 4, 5, 6, 7, 8), table.Text("oops"), table.Text("10"))
	tbl := testkit.Columns(t, []string{"qty"}, cells)

	result := Compute(tbl, profiling.StatisticsOptions)
	s, ok := result.Numeric["qty"]
	require.True(t, ok)
	assert.Equal(t, 9, s.Count)
	assert.Equal(t, 46.0, s.Sum)
}

func TestComputeOmitsEmptyColumns(t *testing.T) {
	tbl := testkit.Columns(t, []string{"a", "blank"},
		testkit.Numbers(1, 2),
		[]table.Cell{table.Null(), table.Text("")},
	)

	result := Compute(tbl, profiling.StatisticsOptions)
	assert.NotContains(t, result.Numeric, "blank")
	assert.NotContains(t, result.Text, "blank")
	assert.Equal(t, []string{"a"}, result.Order)
	assert.Equal(t, 2, result.Overview.TotalColumns)
}

func TestComputeEmptyTable(t *testing.T) {
	result := Compute(testkit.EmptyTable(t), profiling.StatisticsOptions)
	assert.Equal(t, analysis.OutcomeEmptyTable, result.Outcome)
	assert.Empty(t, result.Numeric)
	assert.Empty(t, result.Text)

	result = Compute(nil, profiling.StatisticsOptions)
	assert.Equal(t, analysis.OutcomeEmptyTable, result.Outcome)
}

func TestMeanTimesCountMatchesSum(t *testing.T) {
	tbl := testkit.ShoppingTable(t, 300)
	result := Compute(tbl, profiling.StatisticsOptions)
	require.NotEmpty(t, result.Numeric)

	for name, s := range result.Numeric {
		assert.InDelta(t, s.Sum, s.Mean*float64(s.Count), 1e-6*math.Max(1, math.Abs(s.Sum)), name)
		assert.LessOrEqual(t, s.Min, s.Median, name)
		assert.LessOrEqual(t, s.Median, s.Max, name)
	}
}

func TestModeOf(t *testing.T) {
	assert.Equal(t, "b", ModeOf([]string{"a", "b", "c"}, map[string]int{"a": 1, "b": 3, "c": 3}))
	assert.Equal(t, "", ModeOf(nil, nil))
}
