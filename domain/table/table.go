package table

import (
	"strings"

	"tablens/domain/core"
)

// Table is a parsed, immutable-by-convention table. Every row has exactly
// len(Headers) cells; a missing value is a Null cell, never an omitted one.
// Analyses only read a Table and never retain it.
type Table struct {
	Headers []string `json:"headers"`
	Rows    [][]Cell `json:"rows"`
}

// New builds a table and validates its structure. This is the loading
// boundary check: analyses assume a valid table.
func New(headers []string, rows [][]Cell) (*Table, error) {
	t := &Table{Headers: headers, Rows: rows}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate enforces unique non-empty headers and uniform row arity.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Headers))
	for _, h := range t.Headers {
		if strings.TrimSpace(h) == "" {
			return core.ErrEmptyHeader
		}
		if _, dup := seen[h]; dup {
			return core.NewDuplicateHeaderError(h)
		}
		seen[h] = struct{}{}
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return core.NewArityError(i+1, len(row), len(t.Headers))
		}
	}
	return nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Width returns the number of columns.
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Headers)
}

// IsEmpty reports a nil table or one with no rows.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// Index returns the position of a header, or -1.
func (t *Table) Index(name string) int {
	if t == nil {
		return -1
	}
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Column returns the cells of one column in row order.
func (t *Table) Column(name string) ([]Cell, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	return t.ColumnAt(idx), true
}

// ColumnAt returns the cells at header position idx.
func (t *Table) ColumnAt(idx int) []Cell {
	out := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// NonBlank filters out null and empty-text cells, keeping order.
func NonBlank(cells []Cell) []Cell {
	out := make([]Cell, 0, len(cells))
	for _, c := range cells {
		if !c.IsBlank() {
			out = append(out, c)
		}
	}
	return out
}
