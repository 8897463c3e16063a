package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"tablens/app"
	"tablens/internal"
)

// DefaultMaxBody bounds request bodies.
const DefaultMaxBody = 32 << 20

// Server exposes the analyses over HTTP.
type Server struct {
	router   *gin.Engine
	analysis *app.AnalysisService
	reports  *app.ReportService
	logger   *internal.Logger
	// reportSlots bounds concurrent report builds; each build fans out
	// across several goroutines.
	reportSlots *semaphore.Weighted
	maxBody     int64
}

// NewServer wires the routes.
func NewServer(analysis *app.AnalysisService, reports *app.ReportService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:      gin.New(),
		analysis:    analysis,
		reports:     reports,
		logger:      logger,
		reportSlots: semaphore.NewWeighted(4),
		maxBody:     DefaultMaxBody,
	}
	s.router.Use(gin.Recovery(), s.requestLogger(), s.limitBody())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.POST("/tables/parse", s.handleParse)
	api.POST("/profiles", s.handleProfiles)
	api.POST("/statistics", s.handleStatistics)
	api.POST("/correlation", s.handleCorrelation)
	api.POST("/scatter", s.handleScatter)
	api.POST("/chart", s.handleChart)
	api.POST("/words", s.handleWords)
	api.POST("/sentiment", s.handleSentiment)
	api.POST("/wordcloud", s.handleWordCloud)
	api.POST("/reports", s.handleBuildReport)
	api.GET("/reports", s.handleReportHistory)
	api.GET("/reports/:id", s.handleGetReport)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("%s %s -> %d in %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBody)
		c.Next()
	}
}
