package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	"tablens/app"
	"tablens/domain/core"
	"tablens/internal/errors"
)

// reportRepository implements app.ReportStore
type reportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *sqlx.DB) app.ReportStore {
	return &reportRepository{db: db}
}

type reportRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Fingerprint string    `db:"fingerprint"`
	Body        []byte    `db:"body"`
	CreatedAt   time.Time `db:"created_at"`
}

// Save inserts a report; saving the same ID twice replaces the body.
func (r *reportRepository) Save(ctx context.Context, report *app.Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return errors.Wrap(err, "failed to marshal report")
	}

	query := `INSERT INTO analysis_reports (id, title, fingerprint, body, created_at)
		VALUES (:id, :title, :fingerprint, :body, :created_at)
		ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, body = EXCLUDED.body`

	_, err = r.db.NamedExecContext(ctx, query, reportRow{
		ID:          report.ID.String(),
		Title:       report.Title,
		Fingerprint: report.Fingerprint.String(),
		Body:        body,
		CreatedAt:   report.GeneratedAt.Time(),
	})
	if err != nil {
		return errors.DatabaseError("failed to save report", err)
	}
	return nil
}

// Get retrieves a report by its ID
func (r *reportRepository) Get(ctx context.Context, id core.ReportID) (*app.Report, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, title, fingerprint, body, created_at FROM analysis_reports WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("report " + id.String())
		}
		return nil, errors.DatabaseError("failed to get report", err)
	}

	var report app.Report
	if err := json.Unmarshal(row.Body, &report); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal report")
	}
	return &report, nil
}

// ListByFingerprint returns the newest reports built from the same table.
func (r *reportRepository) ListByFingerprint(ctx context.Context, fingerprint core.Hash, limit int) ([]app.ReportSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, title, fingerprint, created_at FROM analysis_reports
		WHERE fingerprint = $1 ORDER BY created_at DESC LIMIT $2`, fingerprint.String(), limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list reports", err)
	}

	summaries := make([]app.ReportSummary, len(rows))
	for i, row := range rows {
		summaries[i] = app.ReportSummary{
			ID:          core.ReportID(row.ID),
			Title:       row.Title,
			Fingerprint: core.Hash(row.Fingerprint),
			GeneratedAt: core.NewTimestamp(row.CreatedAt.UTC()),
		}
	}
	return summaries, nil
}
