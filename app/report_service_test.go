package app

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablens/domain/analysis"
	"tablens/internal/errors"
	"tablens/internal/testkit"
)

func newReportService(t *testing.T) *ReportService {
	return NewReportService(newService(t), quietLogger())
}

func TestBuildReport(t *testing.T) {
	tbl := testkit.ShoppingTable(t, 120)
	report, err := newReportService(t).Build(context.Background(), tbl, "Orders")
	require.NoError(t, err)

	assert.Equal(t, "Orders", report.Title)
	assert.Len(t, report.Fingerprint.String(), 64)
	assert.Equal(t, 120, report.Overview.TotalRows)
	assert.Len(t, report.Profiles, 8)
	assert.True(t, report.Statistics.OK())
	assert.True(t, report.Correlation.OK())
	require.NotNil(t, report.Scatter)
	assert.True(t, report.Chart.Series.OK())
	assert.True(t, report.Words.OK())
	assert.Equal(t, "review", report.Sentiment.Column)

	s := report.Sentiment.Summary
	assert.Equal(t, s.Total, s.Positive+s.Negative+s.Neutral)
}

func TestBuildReportFingerprintStable(t *testing.T) {
	svc := newReportService(t)
	a, err := svc.Build(context.Background(), testkit.ScoresTable(t), "")
	require.NoError(t, err)
	b, err := svc.Build(context.Background(), testkit.ScoresTable(t), "")
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, strings.HasPrefix(a.Title, "Table report "))
}

func TestBuildReportEmptyTable(t *testing.T) {
	report, err := newReportService(t).Build(context.Background(), testkit.EmptyTable(t), "Empty")
	require.NoError(t, err)
	assert.Equal(t, analysis.OutcomeEmptyTable, report.Statistics.Outcome)
	assert.Equal(t, analysis.OutcomeEmptyTable, report.Correlation.Outcome)
	assert.Equal(t, analysis.OutcomeEmptyTable, report.Chart.Series.Outcome)
	assert.Contains(t, report.Markdown(), "_empty table: table has no rows_")
}

func TestBuildReportErrors(t *testing.T) {
	svc := newReportService(t)
	_, err := svc.Build(context.Background(), nil, "")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Build(ctx, testkit.ScoresTable(t), "")
	require.Error(t, err)
}

func TestReportRendering(t *testing.T) {
	report, err := newReportService(t).Build(context.Background(), testkit.CategoryAmountTable(t), "Sales | Q1")
	require.NoError(t, err)

	md := report.Markdown()
	assert.Contains(t, md, `# Sales \| Q1`)
	assert.Contains(t, md, "## Descriptive statistics")
	assert.Contains(t, md, "| amount | 3 | 5 | 20 |")
	assert.Contains(t, md, "| A | 2 | 15 |")

	html := report.HTML()
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>amount</td>")
}

func TestReportStoreRoundTrip(t *testing.T) {
	store := NewMemoryReportStore()
	svc := newReportService(t).WithStore(store)
	ctx := context.Background()

	first, err := svc.Build(ctx, testkit.LinearTable(t), "first")
	require.NoError(t, err)
	second, err := svc.Build(ctx, testkit.LinearTable(t), "second")
	require.NoError(t, err)

	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	history, err := svc.History(ctx, first.Fingerprint, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	ids := []string{history[0].ID.String(), history[1].ID.String()}
	assert.ElementsMatch(t, []string{first.ID.String(), second.ID.String()}, ids)

	_, err = svc.Get(ctx, "0190c0de-0000-7000-8000-000000000000")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestReportHTMLEscapesTableContent(t *testing.T) {
	tbl := testkit.Columns(t, []string{"<img src=x onerror=alert(1)>", "note"},
		testkit.Numbers(1, 2, 3),
		testkit.Texts("<script>alert(2)</script>", "<script>alert(2)</script>", "[x](javascript:alert(4))"))

	report, err := newReportService(t).Build(context.Background(), tbl, "<b onmouseover=alert(3)>x</b>")
	require.NoError(t, err)

	html := report.HTML()
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "<img")
	assert.NotContains(t, html, "<b onmouseover")
	assert.NotContains(t, html, `href="javascript:`)
	assert.Contains(t, html, "lt;script")

	md := report.Markdown()
	assert.NotContains(t, md, "<script>")
	assert.Contains(t, md, "# &lt;b onmouseover=alert(3)&gt;x&lt;/b&gt;")
}

func TestMemoryReportStoreEmptyHistoryAndCap(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReportStoreWithLimit(2)

	history, err := store.ListByFingerprint(ctx, "missing", 10)
	require.NoError(t, err)
	require.NotNil(t, history)
	raw, err := json.Marshal(history)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	svc := newReportService(t).WithStore(store)
	first, err := svc.Build(ctx, testkit.LinearTable(t), "first")
	require.NoError(t, err)
	_, err = svc.Build(ctx, testkit.LinearTable(t), "second")
	require.NoError(t, err)
	third, err := svc.Build(ctx, testkit.LinearTable(t), "third")
	require.NoError(t, err)

	_, err = store.Get(ctx, first.ID)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	_, err = store.Get(ctx, third.ID)
	assert.NoError(t, err)

	history, err = store.ListByFingerprint(ctx, third.Fingerprint, 0)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
