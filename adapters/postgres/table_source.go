package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/jmoiron/sqlx"

	"tablens/domain/table"
	"tablens/internal"
	"tablens/internal/errors"
)

// DefaultRowLimit caps how many rows a query may load into memory.
const DefaultRowLimit = 100000

// TableSource loads the result of a SQL query as a table.
type TableSource struct {
	db       *sqlx.DB
	rowLimit int
	logger   *internal.Logger
}

// NewTableSource creates a table source over db
func NewTableSource(db *sqlx.DB, logger *internal.Logger) *TableSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TableSource{db: db, rowLimit: DefaultRowLimit, logger: logger}
}

// WithRowLimit changes the row cap; n <= 0 removes it.
func (s *TableSource) WithRowLimit(n int) *TableSource {
	s.rowLimit = n
	return s
}

// Query runs query and converts every returned row. Column names become
// headers, so duplicate names in the select list are rejected.
func (s *TableSource) Query(ctx context.Context, query string, args ...interface{}) (*table.Table, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("failed to run table query", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.DatabaseError("failed to read result columns", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.DatabaseError("failed to read result column types", err)
	}
	dbTypes := make([]string, len(types))
	for i, ct := range types {
		dbTypes[i] = ct.DatabaseTypeName()
	}

	var data [][]table.Cell
	for rows.Next() {
		if s.rowLimit > 0 && len(data) == s.rowLimit {
			s.logger.Warn("table query truncated at %d rows", s.rowLimit)
			break
		}
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DatabaseError("failed to scan row", err)
		}
		data = append(data, RowCells(values, dbTypes))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate rows", err)
	}

	t, err := table.New(columns, data)
	if err != nil {
		return nil, errors.InvalidTable("query result is not a valid table", err)
	}
	s.logger.Debug("loaded %d rows x %d columns from query", t.Len(), t.Width())
	return t, nil
}

// RowCells converts scanned driver values. dbTypes holds the database type
// name of each column and may be shorter than values.
func RowCells(values []interface{}, dbTypes []string) []table.Cell {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		dbType := ""
		if i < len(dbTypes) {
			dbType = dbTypes[i]
		}
		cells[i] = CellFromSQL(v, dbType)
	}
	return cells
}

// CellFromSQL maps a driver value to a cell. Postgres returns NUMERIC and
// JSON columns as bytes, which are decoded by type name here.
func CellFromSQL(v interface{}, dbType string) table.Cell {
	b, ok := v.([]byte)
	if !ok {
		return table.FromValue(v)
	}
	switch strings.ToUpper(dbType) {
	case "NUMERIC", "DECIMAL":
		if n, ok := table.ParseNumber(string(b)); ok {
			return table.Number(n)
		}
	case "JSON", "JSONB":
		var buf bytes.Buffer
		if json.Compact(&buf, b) == nil {
			trimmed := bytes.TrimSpace(buf.Bytes())
			if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
				return table.Nested(buf.String())
			}
			var scalar interface{}
			if json.Unmarshal(trimmed, &scalar) == nil {
				return table.FromValue(scalar)
			}
		}
	}
	return table.Text(string(b))
}
