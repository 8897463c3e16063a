package analysis

// WordCount is one ranked token.
type WordCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// WordFrequencyTable is bounded to top-N and non-increasing by count.
type WordFrequencyTable struct {
	Status
	Column         string      `json:"column"`
	Words          []WordCount `json:"words"`
	DistinctTokens int         `json:"distinct_tokens"`
	TotalTokens    int         `json:"total_tokens"`
	// Language is the ISO 639-3 code of the dominant language, when reliable.
	Language string `json:"language,omitempty"`
}

// Sentiment is the polarity of a scored text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// SentimentRow is the score of one analysed value. Row is 1-based.
type SentimentRow struct {
	Row       int       `json:"row"`
	Preview   string    `json:"preview"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	Sentiment Sentiment `json:"sentiment"`
}

// SentimentSummary counts rows per polarity; the three counts sum to Total.
type SentimentSummary struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// SentimentBreakdown is the lexicon sentiment result for one column.
type SentimentBreakdown struct {
	Status
	Column  string           `json:"column"`
	PerRow  []SentimentRow   `json:"per_row"`
	Summary SentimentSummary `json:"summary"`
}
