package container

import (
	"context"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"tablens/adapters/postgres"
	"tablens/app"
	"tablens/internal"
	"tablens/internal/config"
	"tablens/internal/errors"
	"tablens/internal/migration"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	Store    app.ReportStore
	Analysis *app.AnalysisService
	Reports  *app.ReportService
}

// New creates a container backed by the in-memory report store. Call
// InitWithDatabase to switch persistence to Postgres.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.ConfigInvalid("config cannot be nil")
	}

	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(cfg.Log.Level),
		strings.EqualFold(cfg.Log.Format, "json"))

	c := &Container{
		Config: cfg,
		Logger: logger,
		Store:  app.NewMemoryReportStore(),
	}
	c.Analysis = app.NewAnalysisService(cfg, logger)
	c.Reports = app.NewReportService(c.Analysis, logger).WithStore(c.Store)
	return c, nil
}

// InitWithDatabase connects to Postgres, applies migrations and moves
// report persistence onto the database.
func (c *Container) InitWithDatabase(ctx context.Context) error {
	url := c.Config.Database.URL
	if url == "" {
		return errors.ConfigInvalid("database url is required")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return errors.DatabaseError("failed to connect to database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return errors.DatabaseError("database connection test failed", err)
	}

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		db.Close()
		return err
	}
	c.Logger.Info("database ready, schema version %s", runner.Version())

	c.DB = db
	c.Store = postgres.NewReportRepository(db)
	c.Reports.WithStore(c.Store)
	return nil
}

// TableSource returns a query source over the connected database.
func (c *Container) TableSource() (*postgres.TableSource, error) {
	if c.DB == nil {
		return nil, errors.ConfigInvalid("no database connection")
	}
	return postgres.NewTableSource(c.DB, c.Logger), nil
}

// Close releases the database connection, if any.
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
