package app

import (
	"strings"

	"tablens/domain/analysis"
	"tablens/domain/table"
	"tablens/internal"
	"tablens/internal/aggregation"
	"tablens/internal/config"
	"tablens/internal/correlation"
	"tablens/internal/descriptive"
	"tablens/internal/profiling"
	"tablens/internal/textanalytics"
	"tablens/internal/wordcloud"
)

// Purpose selects the sampling preset a column profile is computed with.
type Purpose string

const (
	PurposeChart       Purpose = "chart"
	PurposeCorrelation Purpose = "correlation"
	PurposeStatistics  Purpose = "statistics"
)

// ChartRequest is an aggregation request. An empty XColumn asks for the
// default chart selection.
type ChartRequest = aggregation.Request

// ChartResult pairs a series with its pie projection.
type ChartResult struct {
	Series analysis.ChartSeries `json:"series"`
	Pie    []analysis.PieSlice  `json:"pie"`
}

// AnalysisService exposes the analyses over a loaded table with
// configuration-driven sampling and bounds. It holds no table state and is
// safe for concurrent use.
type AnalysisService struct {
	cfg    config.AnalysisConfig
	cloud  config.WordCloudConfig
	logger *internal.Logger
}

func NewAnalysisService(cfg *config.Config, logger *internal.Logger) *AnalysisService {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{cfg: cfg.Analysis, cloud: cfg.WordCloud, logger: logger}
}

// Options returns the sampling options for purpose.
func (s *AnalysisService) Options(purpose Purpose) profiling.Options {
	switch purpose {
	case PurposeCorrelation:
		return profiling.Options{SampleSize: s.cfg.CorrelationSampleSize, NumericThreshold: s.cfg.CorrelationThreshold}
	case PurposeStatistics:
		return profiling.Options{SampleSize: s.cfg.StatisticsSampleSize, NumericThreshold: s.cfg.StatisticsThreshold}
	default:
		return profiling.Options{SampleSize: s.cfg.ChartSampleSize, NumericThreshold: s.cfg.ChartThreshold}
	}
}

func (s *AnalysisService) sentimentText() profiling.TextOptions {
	return profiling.TextOptions{SampleSize: s.cfg.TextSampleSize, MinLength: s.cfg.SentimentMinLength}
}

func (s *AnalysisService) wordCloudText() profiling.TextOptions {
	return profiling.TextOptions{SampleSize: s.cfg.TextSampleSize, MinLength: s.cfg.WordCloudMinLength}
}

func (s *AnalysisService) report(op string, status analysis.Status) {
	if !status.OK() {
		s.logger.Debug("%s: %s (%s)", op, status.Outcome, status.Message)
	}
}

// GetColumnProfiles classifies every column with the preset for purpose.
func (s *AnalysisService) GetColumnProfiles(t *table.Table, purpose Purpose) []analysis.ColumnProfile {
	return profiling.Profile(t, s.Options(purpose))
}

// TextColumns lists free-text columns eligible for sentiment (forSentiment)
// or the word cloud.
func (s *AnalysisService) TextColumns(t *table.Table, forSentiment bool) []string {
	if forSentiment {
		return profiling.TextColumns(t, s.sentimentText())
	}
	return profiling.TextColumns(t, s.wordCloudText())
}

func (s *AnalysisService) ComputeDescriptiveStatistics(t *table.Table) analysis.DescriptiveStatistics {
	result := descriptive.Compute(t, s.Options(PurposeStatistics))
	s.report("statistics", result.Status)
	return result
}

// ComputeCorrelationMatrix correlates columns, or every numeric column under
// the correlation preset when columns is empty.
func (s *AnalysisService) ComputeCorrelationMatrix(t *table.Table, columns []string) analysis.CorrelationMatrix {
	if len(columns) == 0 {
		columns, _ = profiling.Split(profiling.Profile(t, s.Options(PurposeCorrelation)))
	}
	result := correlation.Matrix(t, columns)
	s.report("correlation", result.Status)
	return result
}

func (s *AnalysisService) ComputeScatterRegression(t *table.Table, x, y string) analysis.ScatterRegression {
	result := correlation.Scatter(t, x, y)
	s.report("scatter", result.Status)
	return result
}

// ComputeChartSeries aggregates req, falling back to the default selection
// when no x column is given and to the configured partition bound.
func (s *AnalysisService) ComputeChartSeries(t *table.Table, req ChartRequest) ChartResult {
	if req.XColumn == "" {
		def, _ := aggregation.DefaultRequest(t, s.Options(PurposeChart))
		if len(req.Measures) > 0 {
			def.Measures = req.Measures
		}
		def.GroupColumn, def.Percentage, def.MaxPartitions = req.GroupColumn, req.Percentage, req.MaxPartitions
		req = def
	}
	if req.MaxPartitions <= 0 {
		req.MaxPartitions = s.cfg.MaxPartitions
	}
	series := aggregation.Compute(t, req)
	s.report("chart", series.Status)
	return ChartResult{Series: series, Pie: aggregation.Pie(series, aggregation.DefaultPieSlices)}
}

// ComputeWordFrequency ranks tokens of column, or of the first word-cloud
// eligible column when column is empty. topN <= 0 uses the configured bound.
func (s *AnalysisService) ComputeWordFrequency(t *table.Table, column string, topN int) analysis.WordFrequencyTable {
	if column == "" {
		column = s.proseColumn(t, s.TextColumns(t, false))
		if column == "" && !t.IsEmpty() {
			return analysis.WordFrequencyTable{
				Status: analysis.InsufficientData("no free-text column found"),
				Words:  []analysis.WordCount{},
			}
		}
	}
	if topN <= 0 {
		topN = s.cfg.TopWords
	}
	result := textanalytics.WordFrequency(t, column, topN)
	s.report("words", result.Status)
	return result
}

// ComputeSentimentBreakdown scores column, or the first sentiment-eligible
// column when column is empty.
func (s *AnalysisService) ComputeSentimentBreakdown(t *table.Table, column string) analysis.SentimentBreakdown {
	if column == "" {
		column = s.proseColumn(t, s.TextColumns(t, true))
		if column == "" && !t.IsEmpty() {
			return analysis.SentimentBreakdown{
				Status: analysis.InsufficientData("no free-text column found"),
				PerRow: []analysis.SentimentRow{},
			}
		}
	}
	result := textanalytics.SentimentBreakdown(t, column)
	s.report("sentiment", result.Status)
	return result
}

// WordCloud ranks column and lays it out. Zero fields of opts take the
// configured canvas.
func (s *AnalysisService) WordCloud(t *table.Table, column string, opts wordcloud.Options) wordcloud.Layout {
	if opts.Width <= 0 {
		opts.Width = s.cloud.Width
	}
	if opts.Height <= 0 {
		opts.Height = s.cloud.Height
	}
	if opts.Attempts <= 0 {
		opts.Attempts = s.cloud.Attempts
	}
	if opts.Scheme == "" {
		opts.Scheme = s.cloud.Scheme
	}
	if opts.Seed == 0 {
		opts.Seed = s.cloud.Seed
	}
	return wordcloud.Arrange(s.ComputeWordFrequency(t, column, 0), opts)
}

// proseColumn picks the eligible column whose sampled values hold the most
// words on average, so identifiers and dates lose to free text. Ties keep
// table order.
func (s *AnalysisService) proseColumn(t *table.Table, names []string) string {
	best, bestWords := "", -1.0
	for _, name := range names {
		cells, _ := t.Column(name)
		sample := profiling.Sample(cells, s.cfg.TextSampleSize)
		if len(sample) == 0 {
			continue
		}
		words := 0
		for _, c := range sample {
			words += len(strings.Fields(c.String()))
		}
		if avg := float64(words) / float64(len(sample)); avg > bestWords {
			best, bestWords = name, avg
		}
	}
	return best
}
