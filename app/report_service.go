package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/sync/errgroup"

	"tablens/domain/analysis"
	"tablens/domain/core"
	"tablens/domain/table"
	"tablens/internal"
	"tablens/internal/errors"
	"tablens/internal/profiling"
)

const (
	reportPairs  = 10
	reportPoints = 20
	reportWords  = 20
)

// Report bundles every analysis of one table.
type Report struct {
	ID          core.ReportID                  `json:"id"`
	Title       string                         `json:"title"`
	Fingerprint core.Hash                      `json:"fingerprint"`
	GeneratedAt core.Timestamp                 `json:"generated_at"`
	Overview    analysis.TableOverview         `json:"overview"`
	Profiles    []analysis.ColumnProfile       `json:"profiles"`
	Statistics  analysis.DescriptiveStatistics `json:"statistics"`
	Correlation analysis.CorrelationMatrix     `json:"correlation"`
	// Scatter is the regression of the strongest pair, when one exists.
	Scatter   *analysis.ScatterRegression  `json:"scatter,omitempty"`
	Chart     ChartResult                  `json:"chart"`
	Words     analysis.WordFrequencyTable  `json:"words"`
	Sentiment analysis.SentimentBreakdown  `json:"sentiment"`
	Elapsed   time.Duration                `json:"elapsed_ns"`
}

// ReportService runs all analyses over a table concurrently. The table is
// only read, so the analyses share it without locking.
type ReportService struct {
	analysis    *AnalysisService
	store       ReportStore
	logger      *internal.Logger
	concurrency int
}

func NewReportService(svc *AnalysisService, logger *internal.Logger) *ReportService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReportService{analysis: svc, logger: logger, concurrency: 4}
}

// WithStore persists every built report to store.
func (s *ReportService) WithStore(store ReportStore) *ReportService {
	s.store = store
	return s
}

// Get loads a stored report.
func (s *ReportService) Get(ctx context.Context, id core.ReportID) (*Report, error) {
	if s.store == nil {
		return nil, errors.NotFound("report " + id.String())
	}
	return s.store.Get(ctx, id)
}

// History lists stored reports built from the same table as fingerprint.
func (s *ReportService) History(ctx context.Context, fingerprint core.Hash, limit int) ([]ReportSummary, error) {
	if s.store == nil {
		return []ReportSummary{}, nil
	}
	return s.store.ListByFingerprint(ctx, fingerprint, limit)
}

// Fingerprint hashes the table's JSON form.
func Fingerprint(t *table.Table) (core.Hash, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", errors.Wrap(err, "encode table")
	}
	return core.NewHash(data), nil
}

// Build produces a report. It fails only on a nil table, an unencodable
// table or a cancelled context; analysis outcomes are carried in the report.
func (s *ReportService) Build(ctx context.Context, t *table.Table, title string) (*Report, error) {
	if t == nil {
		return nil, errors.InvalidInput("table is required")
	}
	start := time.Now()
	fingerprint, err := Fingerprint(t)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:          core.NewReportID(),
		Title:       title,
		Fingerprint: fingerprint,
		GeneratedAt: core.Now(),
	}
	if report.Title == "" {
		report.Title = "Table report " + fingerprint.Short()
	}
	log := s.logger.With("report", report.ID.String())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	step := func(name string, fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			began := time.Now()
			fn()
			log.Trace("%s done in %s", name, time.Since(began))
			return nil
		})
	}

	step("profiles", func() {
		report.Profiles = s.analysis.GetColumnProfiles(t, PurposeStatistics)
		report.Overview = profiling.Overview(t, report.Profiles)
	})
	step("statistics", func() { report.Statistics = s.analysis.ComputeDescriptiveStatistics(t) })
	step("correlation", func() {
		report.Correlation = s.analysis.ComputeCorrelationMatrix(t, nil)
		if len(report.Correlation.Pairs) > 0 {
			top := report.Correlation.Pairs[0]
			scatter := s.analysis.ComputeScatterRegression(t, top.A, top.B)
			report.Scatter = &scatter
		}
	})
	step("chart", func() { report.Chart = s.analysis.ComputeChartSeries(t, ChartRequest{}) })
	step("words", func() { report.Words = s.analysis.ComputeWordFrequency(t, "", 0) })
	step("sentiment", func() { report.Sentiment = s.analysis.ComputeSentimentBreakdown(t, "") })

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "build report")
	}
	report.Elapsed = time.Since(start)
	if s.store != nil {
		if err := s.store.Save(ctx, report); err != nil {
			return nil, errors.Wrap(err, "store report")
		}
	}
	log.Info("report built for %d rows x %d columns in %s", t.Len(), t.Width(), report.Elapsed)
	return report, nil
}

// Markdown renders the report as a Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMD(r.Title))
	fmt.Fprintf(&b, "- Report: `%s`\n- Fingerprint: `%s`\n- Generated: %s\n", r.ID, r.Fingerprint.Short(), r.GeneratedAt)
	fmt.Fprintf(&b, "- Rows: %d, columns: %d (%d numeric, %d text)\n\n",
		r.Overview.TotalRows, r.Overview.TotalColumns, r.Overview.NumericColumns, r.Overview.TextColumns)

	b.WriteString("## Columns\n\n| Column | Kind | Numeric ratio |\n|---|---|---|\n")
	for _, p := range r.Profiles {
		fmt.Fprintf(&b, "| %s | %s | %.2f |\n", escapeMD(p.Name), p.Kind, p.NumericRatio)
	}

	b.WriteString("\n## Descriptive statistics\n\n")
	if !r.Statistics.OK() {
		writeStatus(&b, r.Statistics.Status)
	} else {
		if len(r.Statistics.Numeric) > 0 {
			b.WriteString("| Column | Count | Min | Max | Mean | Median | Mode | Std |\n|---|---|---|---|---|---|---|---|\n")
			for _, name := range r.Statistics.Order {
				if n, ok := r.Statistics.Numeric[name]; ok {
					fmt.Fprintf(&b, "| %s | %d | %g | %g | %.4g | %g | %g | %.4g |\n",
						escapeMD(name), n.Count, n.Min, n.Max, n.Mean, n.Median, n.Mode, n.Std)
				}
			}
			b.WriteString("\n")
		}
		if len(r.Statistics.Text) > 0 {
			b.WriteString("| Column | Count | Unique | Most frequent |\n|---|---|---|---|\n")
			for _, name := range r.Statistics.Order {
				if s, ok := r.Statistics.Text[name]; ok {
					fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", escapeMD(name), s.Count, s.UniqueCount, escapeMD(s.ModeValue))
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Correlation\n\n")
	if !r.Correlation.OK() {
		writeStatus(&b, r.Correlation.Status)
	} else {
		b.WriteString("| A | B | r | Strength |\n|---|---|---|---|\n")
		for i, p := range r.Correlation.Pairs {
			if i == reportPairs {
				break
			}
			fmt.Fprintf(&b, "| %s | %s | %.3f | %s %s |\n", escapeMD(p.A), escapeMD(p.B), p.R, p.Strength, p.Direction)
		}
		if r.Scatter != nil && r.Scatter.OK() {
			fmt.Fprintf(&b, "\nStrongest pair %s vs %s: r² = %.3f, y = %.4g·x + %.4g over %d rows (%d excluded).\n",
				codeMD(r.Scatter.X), codeMD(r.Scatter.Y), r.Scatter.RSquared, r.Scatter.Slope, r.Scatter.Intercept, len(r.Scatter.Points), r.Scatter.Excluded)
		}
		b.WriteString("\n")
	}

	series := r.Chart.Series
	b.WriteString("## Chart\n\n")
	if !series.OK() {
		writeStatus(&b, series.Status)
	} else {
		m := series.Measures[0]
		fmt.Fprintf(&b, "%s by %s", codeMD(m), codeMD(series.XColumn))
		if series.Truncated {
			fmt.Fprintf(&b, " (first %d of %d partitions)", len(series.Points), series.Partitions)
		}
		b.WriteString("\n\n| Key | Rows | Mean |\n|---|---|---|\n")
		for i, p := range series.Points {
			if i == reportPoints {
				break
			}
			fmt.Fprintf(&b, "| %s | %d | %.4g |\n", escapeMD(p.Key), p.Count, p.Values[m])
		}
		b.WriteString("\n")
	}

	b.WriteString("## Word frequency\n\n")
	if !r.Words.OK() {
		writeStatus(&b, r.Words.Status)
	} else {
		fmt.Fprintf(&b, "Column %s: %d tokens, %d distinct", codeMD(r.Words.Column), r.Words.TotalTokens, r.Words.DistinctTokens)
		if r.Words.Language != "" {
			fmt.Fprintf(&b, ", language %s", codeMD(r.Words.Language))
		}
		b.WriteString(".\n\n")
		for i, w := range r.Words.Words {
			if i == reportWords {
				break
			}
			fmt.Fprintf(&b, "%d. %s (%d)\n", i+1, escapeMD(w.Token), w.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sentiment\n\n")
	if !r.Sentiment.OK() {
		writeStatus(&b, r.Sentiment.Status)
	} else {
		sum := r.Sentiment.Summary
		fmt.Fprintf(&b, "Column %s: %d analysed, %d positive, %d negative, %d neutral.\n",
			codeMD(r.Sentiment.Column), sum.Total, sum.Positive, sum.Negative, sum.Neutral)
	}
	return b.String()
}

// HTML renders the Markdown report to an HTML fragment. Table content is
// user supplied, so raw HTML in the Markdown is dropped and links are
// restricted to safe schemes.
func (r *Report) HTML() string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink,
	})
	return string(markdown.ToHTML([]byte(r.Markdown()), p, renderer))
}

func writeStatus(b *strings.Builder, s analysis.Status) {
	fmt.Fprintf(b, "_%s: %s_\n\n", strings.ReplaceAll(string(s.Outcome), "_", " "), escapeMD(s.Message))
}

// mdEscaper neutralises table syntax and emphasis, and entity-encodes HTML
// metacharacters so user text never reaches the HTML output as markup.
var mdEscaper = strings.NewReplacer(
	"|", `\|`, "*", `\*`, "_", `\_`, "`", "'", "\n", " ", "[", `\[`, "]", `\]`,
	"&", "&amp;", "<", "&lt;", ">", "&gt;",
)

func escapeMD(s string) string {
	return mdEscaper.Replace(s)
}

// codeMD wraps s in a code span; the renderer escapes code span content.
func codeMD(s string) string {
	return "`" + strings.NewReplacer("`", "'", "\n", " ").Replace(s) + "`"
}
