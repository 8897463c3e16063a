package textanalytics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablens/domain/analysis"
	"tablens/domain/table"
	"tablens/internal/testkit"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"punctuation and stop words", "The GOOD, the bad & 好的 product!", []string{"good", "bad", "好的", "product"}},
		{"short tokens dropped", "a I x 我 ok", []string{"ok"}},
		{"digits stripped", "order 42 shipped", []string{"order", "shipped"}},
		{"full width folded", "ＧＯＯＤ service", []string{"good", "service"}},
		{"empty", "   ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWordFrequencyRanksByCount(t *testing.T) {
	tbl := testkit.Columns(t, []string{"notes"},
		[]table.Cell{table.Text("apple banana apple"), table.Null(), table.Text("banana cherry"), table.Text("apple")})

	freq := WordFrequency(tbl, "notes", 2)
	require.True(t, freq.OK())
	assert.Equal(t, []analysis.WordCount{{Token: "apple", Count: 3}, {Token: "banana", Count: 2}}, freq.Words)
	assert.Equal(t, 3, freq.DistinctTokens)
	assert.Equal(t, 6, freq.TotalTokens)
}

func TestWordFrequencyTiesKeepFirstSeen(t *testing.T) {
	tbl := testkit.Columns(t, []string{"notes"}, testkit.Texts("kiwi mango", "mango kiwi", "plum"))

	freq := WordFrequency(tbl, "notes", 0)
	require.True(t, freq.OK())
	require.Len(t, freq.Words, 3)
	assert.Equal(t, "kiwi", freq.Words[0].Token)
	assert.Equal(t, "mango", freq.Words[1].Token)
	assert.Equal(t, "plum", freq.Words[2].Token)
}

func TestWordFrequencyBoundedAndNonIncreasing(t *testing.T) {
	values := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		values = append(values, strings.Repeat(fmt.Sprintf("w%s ", letters(i)), i%7+1))
	}
	tbl := testkit.Columns(t, []string{"notes"}, testkit.Texts(values...))

	freq := WordFrequency(tbl, "notes", 0)
	require.True(t, freq.OK())
	assert.LessOrEqual(t, len(freq.Words), DefaultTopN)
	for i := 1; i < len(freq.Words); i++ {
		assert.GreaterOrEqual(t, freq.Words[i-1].Count, freq.Words[i].Count)
	}
}

// letters spells i in base 26 so tokens survive the letter filter.
func letters(i int) string {
	s := ""
	for {
		s = string(rune('a'+i%26)) + s
		i /= 26
		if i == 0 {
			return s
		}
	}
}

func TestWordFrequencyOutcomes(t *testing.T) {
	assert.Equal(t, analysis.OutcomeEmptyTable, WordFrequency(testkit.EmptyTable(t), "review", 10).Outcome)
	assert.Equal(t, analysis.OutcomeInvalidColumnSelection, WordFrequency(testkit.ReviewsTable(t), "missing", 10).Outcome)

	numbers := testkit.Columns(t, []string{"n"}, testkit.Numbers(1, 2, 3))
	freq := WordFrequency(numbers, "n", 10)
	assert.Equal(t, analysis.OutcomeInsufficientData, freq.Outcome)
	assert.NotNil(t, freq.Words)
}

func TestDetectLanguage(t *testing.T) {
	assert.Empty(t, DetectLanguage("  "))
	english := "The delivery arrived on time and the package was well protected. " +
		"I would happily order from this shop again because the quality is excellent."
	assert.Equal(t, "eng", DetectLanguage(english))
}

func TestSentimentScenario(t *testing.T) {
	result := SentimentBreakdown(testkit.ReviewsTable(t), "review")
	require.True(t, result.OK())
	assert.Equal(t, analysis.SentimentSummary{Total: 3, Positive: 1, Negative: 1, Neutral: 1}, result.Summary)

	require.Len(t, result.PerRow, 3)
	assert.Equal(t, analysis.SentimentPositive, result.PerRow[0].Sentiment)
	assert.Equal(t, analysis.SentimentNegative, result.PerRow[1].Sentiment)
	assert.Equal(t, analysis.SentimentNeutral, result.PerRow[2].Sentiment)
}

func TestScoreSubstringMatching(t *testing.T) {
	tk := NewTokenizer()
	tests := []struct {
		text string
		want int
	}{
		{"Goodness me", 1},
		{"good great awesome", 3},
		{"goodbad", 0},
		{"这个产品很好", 1},
		{"不好", 0},
		{"terrible, awful, bad", -3},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tk.Score(tt.text), tt.text)
	}
}

func TestSentimentSkipsBlankAndKeepsRowNumbers(t *testing.T) {
	long := strings.Repeat("好", PreviewLength+5)
	tbl := testkit.Columns(t, []string{"review"},
		[]table.Cell{table.Null(), table.Text("love it"), table.Text("  "), table.Number(5), table.Text(long)})

	result := SentimentBreakdown(tbl, "review")
	require.True(t, result.OK())
	require.Len(t, result.PerRow, 2)
	assert.Equal(t, 2, result.PerRow[0].Row)
	assert.Equal(t, 5, result.PerRow[1].Row)
	assert.Equal(t, strings.Repeat("好", PreviewLength)+"...", result.PerRow[1].Preview)
	assert.Equal(t, long, result.PerRow[1].Text)

	s := result.Summary
	assert.Equal(t, s.Total, s.Positive+s.Negative+s.Neutral)
}

func TestSentimentOutcomes(t *testing.T) {
	assert.Equal(t, analysis.OutcomeEmptyTable, SentimentBreakdown(testkit.EmptyTable(t), "review").Outcome)
	assert.Equal(t, analysis.OutcomeInvalidColumnSelection, SentimentBreakdown(testkit.ReviewsTable(t), "nope").Outcome)

	numbers := testkit.Columns(t, []string{"n"}, testkit.Numbers(1, 2))
	assert.Equal(t, analysis.OutcomeInsufficientData, SentimentBreakdown(numbers, "n").Outcome)
}

func TestSentimentOnShoppingReviews(t *testing.T) {
	result := SentimentBreakdown(testkit.ShoppingTable(t, 200), "review")
	require.True(t, result.OK())
	s := result.Summary
	assert.Equal(t, s.Total, s.Positive+s.Negative+s.Neutral)
	assert.Positive(t, s.Positive)
	assert.Positive(t, s.Negative)
}
