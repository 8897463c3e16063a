package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablens/adapters/excel"
	"tablens/app"
	"tablens/domain/core"
	"tablens/domain/table"
	"tablens/internal/errors"
	"tablens/internal/wordcloud"
)

// statusFor maps an error code to an HTTP status. Analysis outcomes are not
// errors and are returned with 200.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeInvalidTable:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}

// bind decodes the JSON body into req and builds its table.
func (s *Server) bind(c *gin.Context, req interface{}, payload func() *TablePayload) (*table.Table, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		s.fail(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid request body")))
		return nil, false
	}
	t, err := payload().Build()
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return t, true
}

func (s *Server) handleParse(c *gin.Context) {
	format, ok := excel.ParseFormat(c.DefaultQuery("format", "json"))
	if !ok {
		s.fail(c, errors.InvalidInput("format must be one of xlsx, csv, json"))
		return
	}
	cfg := excel.DefaultReaderConfig()
	cfg.Sheet = c.Query("sheet")
	t, err := excel.Read(c.Request.Body, format, cfg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"table":    t,
		"profiles": s.analysis.GetColumnProfiles(t, app.PurposeChart),
	})
}

func (s *Server) handleProfiles(c *gin.Context) {
	var req profilesRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	purpose := app.Purpose(req.Purpose)
	if purpose == "" {
		purpose = app.PurposeChart
	}
	c.JSON(http.StatusOK, gin.H{"profiles": s.analysis.GetColumnProfiles(t, purpose)})
}

func (s *Server) handleStatistics(c *gin.Context) {
	var req tableRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analysis.ComputeDescriptiveStatistics(t))
}

func (s *Server) handleCorrelation(c *gin.Context) {
	var req correlationRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analysis.ComputeCorrelationMatrix(t, req.Columns))
}

func (s *Server) handleScatter(c *gin.Context) {
	var req scatterRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analysis.ComputeScatterRegression(t, req.X, req.Y))
}

func (s *Server) handleChart(c *gin.Context) {
	var req chartRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analysis.ComputeChartSeries(t, app.ChartRequest{
		XColumn:       req.XColumn,
		Measures:      req.Measures,
		GroupColumn:   req.GroupColumn,
		Percentage:    req.Percentage,
		MaxPartitions: req.MaxPartitions,
	}))
}

func (s *Server) handleWords(c *gin.Context) {
	var req wordsRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analysis.ComputeWordFrequency(t, req.Column, req.TopN))
}

func (s *Server) handleSentiment(c *gin.Context) {
	var req wordsRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.analysis.ComputeSentimentBreakdown(t, req.Column))
}

func (s *Server) handleWordCloud(c *gin.Context) {
	var req wordCloudRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}
	layout := s.analysis.WordCloud(t, req.Column, wordcloud.Options{
		Width:  req.Width,
		Height: req.Height,
		Scheme: req.Scheme,
		Seed:   req.Seed,
	})
	if c.Query("format") == "svg" && layout.OK() {
		c.Data(http.StatusOK, "image/svg+xml; charset=utf-8", []byte(layout.SVG()))
		return
	}
	c.JSON(http.StatusOK, layout)
}

func (s *Server) handleBuildReport(c *gin.Context) {
	var req reportRequest
	t, ok := s.bind(c, &req, func() *TablePayload { return req.Table })
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := s.reportSlots.Acquire(ctx, 1); err != nil {
		s.fail(c, errors.Wrap(err, "wait for report slot"))
		return
	}
	defer s.reportSlots.Release(1)

	report, err := s.reports.Build(ctx, t, req.Title)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.renderReport(c, http.StatusCreated, report)
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		s.fail(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	report, err := s.reports.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.renderReport(c, http.StatusOK, report)
}

func (s *Server) handleReportHistory(c *gin.Context) {
	fingerprint := core.Hash(c.Query("fingerprint"))
	if fingerprint.IsEmpty() {
		s.fail(c, errors.InvalidInput("fingerprint query parameter is required"))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	history, err := s.reports.History(c.Request.Context(), fingerprint, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": history})
}

func (s *Server) renderReport(c *gin.Context, status int, report *app.Report) {
	switch c.Query("format") {
	case "md", "markdown":
		c.Data(status, "text/markdown; charset=utf-8", []byte(report.Markdown()))
	case "html":
		c.Data(status, "text/html; charset=utf-8", []byte(report.HTML()))
	default:
		c.JSON(status, report)
	}
}
