package profiling

import (
	"unicode/utf8"

	"tablens/domain/table"
)

// TextOptions controls free-text eligibility for word frequency and sentiment.
type TextOptions struct {
	SampleSize int `json:"sample_size"`
	// MinLength is exclusive: a value must be longer than this many characters.
	MinLength int `json:"min_length"`
}

// Eligibility presets.
var (
	SentimentTextOptions = TextOptions{SampleSize: 10, MinLength: 5}
	WordCloudTextOptions = TextOptions{SampleSize: 10, MinLength: 2}
)

// IsFreeText reports whether more than half of the sampled non-blank values
// are non-numeric strings longer than MinLength.
func IsFreeText(cells []table.Cell, opts TextOptions) bool {
	sample := Sample(cells, opts.SampleSize)
	if len(sample) == 0 {
		return false
	}
	texty := 0
	for _, c := range sample {
		s := c.String()
		if _, numeric := table.ParseNumber(s); numeric {
			continue
		}
		if utf8.RuneCountInString(s) > opts.MinLength {
			texty++
		}
	}
	return float64(texty) > float64(len(sample))*0.5
}

// TextColumns lists free-text columns in header order.
func TextColumns(t *table.Table, opts TextOptions) []string {
	if t == nil {
		return nil
	}
	var cols []string
	for i, h := range t.Headers {
		if IsFreeText(t.ColumnAt(i), opts) {
			cols = append(cols, h)
		}
	}
	return cols
}
