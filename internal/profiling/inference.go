// Package profiling classifies table columns as numeric or text from a
// bounded sample of their leading values.
package profiling

import (
	"tablens/domain/analysis"
	"tablens/domain/table"
)

// Options controls sampling. The result approximates the column from its
// prefix; it is not an exhaustive scan.
type Options struct {
	// SampleSize is how many leading non-blank values are inspected.
	// Zero or negative means every non-blank value.
	SampleSize int `json:"sample_size"`
	// NumericThreshold is the fraction of sampled values that must parse as
	// numbers, strictly exceeded, for a Numeric classification.
	NumericThreshold float64 `json:"numeric_threshold"`
}

// Sampling presets used by the individual analyses.
var (
	ChartOptions       = Options{SampleSize: 10, NumericThreshold: 0.7}
	CorrelationOptions = Options{SampleSize: 20, NumericThreshold: 0.8}
	StatisticsOptions  = Options{SampleSize: 0, NumericThreshold: 0.7}
)

// Sample returns up to n leading non-blank cells; n <= 0 returns all of them.
func Sample(cells []table.Cell, n int) []table.Cell {
	out := make([]table.Cell, 0, capFor(len(cells), n))
	for _, c := range cells {
		if c.IsBlank() {
			continue
		}
		out = append(out, c)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

func capFor(total, n int) int {
	if n > 0 && n < total {
		return n
	}
	return total
}

// InferColumn classifies a single column. A column with no sampled values is
// Text with a zero ratio.
func InferColumn(name string, cells []table.Cell, opts Options) analysis.ColumnProfile {
	sample := Sample(cells, opts.SampleSize)
	profile := analysis.ColumnProfile{
		Name:    name,
		Kind:    analysis.KindText,
		Sampled: len(sample),
	}
	if len(sample) == 0 {
		return profile
	}

	numeric := 0
	for _, c := range sample {
		if c.IsNumeric() {
			numeric++
		}
	}
	profile.NumericRatio = float64(numeric) / float64(len(sample))
	if profile.NumericRatio > opts.NumericThreshold {
		profile.Kind = analysis.KindNumeric
	}
	return profile
}

// Profile classifies every column in header order.
func Profile(t *table.Table, opts Options) []analysis.ColumnProfile {
	if t == nil {
		return []analysis.ColumnProfile{}
	}
	profiles := make([]analysis.ColumnProfile, len(t.Headers))
	for i, h := range t.Headers {
		profiles[i] = InferColumn(h, t.ColumnAt(i), opts)
	}
	return profiles
}

// Split partitions profiles into numeric and text column names, keeping order.
func Split(profiles []analysis.ColumnProfile) (numeric, text []string) {
	for _, p := range profiles {
		if p.Kind == analysis.KindNumeric {
			numeric = append(numeric, p.Name)
		} else {
			text = append(text, p.Name)
		}
	}
	return numeric, text
}

// Overview summarises table shape using the given profiles.
func Overview(t *table.Table, profiles []analysis.ColumnProfile) analysis.TableOverview {
	numeric, text := Split(profiles)
	return analysis.TableOverview{
		TotalRows:      t.Len(),
		TotalColumns:   t.Width(),
		NumericColumns: len(numeric),
		TextColumns:    len(text),
	}
}
