// Package descriptive computes per-column summary statistics.
package descriptive

import (
	"github.com/montanaflynn/stats"

	"tablens/domain/analysis"
	"tablens/domain/table"
	"tablens/internal/profiling"
)

// Compute summarises every column of t. Column kinds come from profiling with
// opts; numeric columns summarise the values that parse as numbers, text
// columns summarise every non-blank value. Columns without values are
// omitted from both maps.
func Compute(t *table.Table, opts profiling.Options) analysis.DescriptiveStatistics {
	result := analysis.DescriptiveStatistics{
		Status:      analysis.Ok(),
		Numeric:     map[string]analysis.NumericSummary{},
		Shapes:      map[string]analysis.DistributionShape{},
		Text:        map[string]analysis.TextSummary{},
		ColumnTypes: map[string]analysis.ColumnKind{},
		Order:       []string{},
	}
	if t.IsEmpty() {
		result.Status = analysis.EmptyTable()
		result.Overview = analysis.TableOverview{TotalColumns: t.Width()}
		return result
	}

	profiles := make([]analysis.ColumnProfile, 0, t.Width())
	for i, name := range t.Headers {
		values := table.NonBlank(t.ColumnAt(i))
		if len(values) == 0 {
			continue
		}
		profile := profiling.InferColumn(name, values, opts)
		profiles = append(profiles, profile)
		result.ColumnTypes[name] = profile.Kind
		result.Order = append(result.Order, name)

		if profile.Kind == analysis.KindNumeric {
			nums := numbers(values)
			result.Numeric[name] = SummarizeNumbers(nums)
			if shape, ok := Shape(nums); ok {
				result.Shapes[name] = shape
			}
		} else {
			result.Text[name] = SummarizeText(values)
		}
	}

	result.Overview = profiling.Overview(t, profiles)
	if len(result.Order) == 0 {
		result.Status = analysis.InsufficientData("no column has any values")
	}
	return result
}

func numbers(cells []table.Cell) []float64 {
	out := make([]float64, 0, len(cells))
	for _, c := range cells {
		if f, ok := c.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// SummarizeNumbers computes count, extremes, sum, mean, median, mode and the
// population standard deviation. An empty input yields the zero summary.
func SummarizeNumbers(values []float64) analysis.NumericSummary {
	if len(values) == 0 {
		return analysis.NumericSummary{}
	}
	data := stats.Float64Data(values)

	// errors below only signal empty input, ruled out above
	sum, _ := stats.Sum(data)
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	median, _ := stats.Median(data)
	std, _ := stats.StandardDeviationPopulation(data)

	return analysis.NumericSummary{
		Count:  len(values),
		Min:    lo,
		Max:    hi,
		Sum:    sum,
		Mean:   sum / float64(len(values)),
		Median: median,
		Mode:   numericMode(values),
		Std:    std,
	}
}

// numericMode returns the most frequent value; ties go to the value seen first.
func numericMode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	mode, best := values[0], 0
	for _, v := range values {
		if counts[v] > best {
			best = counts[v]
			mode = v
		}
	}
	return mode
}

// SummarizeText counts values by display string.
func SummarizeText(cells []table.Cell) analysis.TextSummary {
	freq := make(map[string]int, len(cells))
	order := make([]string, 0, len(cells))
	for _, c := range cells {
		s := c.String()
		if _, seen := freq[s]; !seen {
			order = append(order, s)
		}
		freq[s]++
	}
	return analysis.TextSummary{
		Count:       len(cells),
		UniqueCount: len(freq),
		ModeValue:   ModeOf(order, freq),
		Frequency:   freq,
	}
}

// ModeOf returns the key with the highest count, scanning keys in the given
// first-seen order so the earliest key wins ties.
func ModeOf(order []string, freq map[string]int) string {
	mode := ""
	best := 0
	for _, k := range order {
		if freq[k] > best {
			best = freq[k]
			mode = k
		}
	}
	return mode
}
