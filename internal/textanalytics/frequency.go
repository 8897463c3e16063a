package textanalytics

import (
	"sort"
	"strings"

	"github.com/abadojack/whatlanggo"

	"tablens/domain/analysis"
	"tablens/domain/table"
)

// DefaultTopN bounds the word-frequency ranking.
const DefaultTopN = 100

const (
	languageSampleValues = 50
	languageConfidence   = 0.5
)

// WordFrequency counts tokens across the text cells of column, ranks them by
// count descending with ties in first-seen order, and keeps the top n
// (DefaultTopN when n <= 0). Every non-blank cell is read through its
// display string.
func WordFrequency(t *table.Table, column string, n int) analysis.WordFrequencyTable {
	result := analysis.WordFrequencyTable{Column: column, Words: []analysis.WordCount{}}
	if t.IsEmpty() {
		result.Status = analysis.EmptyTable()
		return result
	}
	cells, ok := t.Column(column)
	if !ok {
		result.Status = analysis.InvalidSelection("column %q does not exist", column)
		return result
	}
	if n <= 0 {
		n = DefaultTopN
	}

	tk := NewTokenizer()
	counts := make(map[string]int)
	var order []string
	var sample []string
	for _, c := range cells {
		if c.IsBlank() {
			continue
		}
		text := c.String()
		if c.IsText() && len(sample) < languageSampleValues {
			sample = append(sample, text)
		}
		for _, tok := range tk.Tokenize(text) {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
			result.TotalTokens++
		}
	}

	result.DistinctTokens = len(order)
	result.Words = Rank(order, counts, n)
	result.Language = DetectLanguage(strings.Join(sample, "\n"))
	if len(result.Words) == 0 {
		result.Status = analysis.InsufficientData("column %q has no tokens after filtering", column)
		return result
	}
	result.Status = analysis.Ok()
	return result
}

// Rank orders tokens by count descending; the stable sort over first-seen
// order makes ties deterministic.
func Rank(order []string, counts map[string]int, n int) []analysis.WordCount {
	words := make([]analysis.WordCount, len(order))
	for i, tok := range order {
		words[i] = analysis.WordCount{Token: tok, Count: counts[tok]}
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	return words
}

// DetectLanguage returns the ISO 639-3 code of the dominant language of
// text, or "" when detection is not confident.
func DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	if info.Confidence < languageConfidence {
		return ""
	}
	return info.Lang.Iso6393()
}
