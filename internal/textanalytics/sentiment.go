package textanalytics

import (
	"strings"
	"unicode/utf8"

	"tablens/domain/analysis"
	"tablens/domain/table"
)

// PreviewLength is how many characters of a scored text are kept for display.
const PreviewLength = 100

// Score sums +1 for every word containing a positive entry and -1 for every
// word containing a negative entry. One word may hit both lists.
func (tk *Tokenizer) Score(text string) int {
	score := 0
	for _, w := range tk.Words(text) {
		if containsAny(w, PositiveWords) {
			score++
		}
		if containsAny(w, NegativeWords) {
			score--
		}
	}
	return score
}

func containsAny(word string, lexicon []string) bool {
	for _, entry := range lexicon {
		if strings.Contains(word, entry) {
			return true
		}
	}
	return false
}

// Classify maps a score to a polarity by its sign.
func Classify(score int) analysis.Sentiment {
	switch {
	case score > 0:
		return analysis.SentimentPositive
	case score < 0:
		return analysis.SentimentNegative
	default:
		return analysis.SentimentNeutral
	}
}

// Preview truncates text to PreviewLength characters, appending "...".
func Preview(text string) string {
	if utf8.RuneCountInString(text) <= PreviewLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:PreviewLength]) + "..."
}

// SentimentBreakdown scores every non-empty text cell of column.
func SentimentBreakdown(t *table.Table, column string) analysis.SentimentBreakdown {
	result := analysis.SentimentBreakdown{Column: column, PerRow: []analysis.SentimentRow{}}
	if t.IsEmpty() {
		result.Status = analysis.EmptyTable()
		return result
	}
	cells, ok := t.Column(column)
	if !ok {
		result.Status = analysis.InvalidSelection("column %q does not exist", column)
		return result
	}

	tk := NewTokenizer()
	for i, c := range cells {
		if !c.IsText() || strings.TrimSpace(c.Raw()) == "" {
			continue
		}
		text := c.Raw()
		score := tk.Score(text)
		row := analysis.SentimentRow{
			Row:       i + 1,
			Preview:   Preview(text),
			Text:      text,
			Score:     score,
			Sentiment: Classify(score),
		}
		result.PerRow = append(result.PerRow, row)

		result.Summary.Total++
		switch row.Sentiment {
		case analysis.SentimentPositive:
			result.Summary.Positive++
		case analysis.SentimentNegative:
			result.Summary.Negative++
		default:
			result.Summary.Neutral++
		}
	}

	if result.Summary.Total == 0 {
		result.Status = analysis.InsufficientData("column %q has no text values", column)
		return result
	}
	result.Status = analysis.Ok()
	return result
}
