package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tablens/domain/table"
)

func TestCellFromSQL(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		value  interface{}
		dbType string
		want   table.Cell
	}{
		{"null", nil, "TEXT", table.Null()},
		{"int", int64(42), "INT8", table.Number(42)},
		{"float", 2.5, "FLOAT8", table.Number(2.5)},
		{"bool", true, "BOOL", table.Bool(true)},
		{"text bytes", []byte("North"), "TEXT", table.Text("North")},
		{"numeric bytes", []byte("12.50"), "NUMERIC", table.Number(12.5)},
		{"bad numeric stays text", []byte("NaN"), "NUMERIC", table.Text("NaN")},
		{"jsonb object", []byte(`{"a": 1}`), "JSONB", table.Nested(`{"a":1}`)},
		{"jsonb scalar", []byte(`"x"`), "JSONB", table.Text("x")},
		{"timestamp", ts, "TIMESTAMPTZ", table.Text("2024-03-01T12:00:00Z")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellFromSQL(tt.value, tt.dbType))
		})
	}
}

func TestRowCells(t *testing.T) {
	cells := RowCells([]interface{}{[]byte("3"), []byte("3")}, []string{"NUMERIC"})
	assert.Equal(t, []table.Cell{table.Number(3), table.Text("3")}, cells)
}
