// Package analysis provides the result structures produced by the analytics
// engine. Every result is owned by the caller; nothing here is cached.
package analysis

import "fmt"

// Outcome tags whether an analysis produced a usable result.
type Outcome string

const (
	OutcomeOK                     Outcome = "ok"
	OutcomeInsufficientData       Outcome = "insufficient_data"
	OutcomeInvalidColumnSelection Outcome = "invalid_column_selection"
	OutcomeEmptyTable             Outcome = "empty_table"
)

// Status is embedded in every result. Analyses report problems here instead
// of returning errors so a presentation layer can show guidance.
type Status struct {
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message,omitempty"`
}

// OK reports a usable result.
func (s Status) OK() bool { return s.Outcome == OutcomeOK }

// Result returns the status itself, letting callers read it through any
// result that embeds Status.
func (s Status) Result() Status { return s }

// Ok is the successful status.
func Ok() Status { return Status{Outcome: OutcomeOK} }

// EmptyTable is returned when the table has no rows.
func EmptyTable() Status {
	return Status{Outcome: OutcomeEmptyTable, Message: "table has no rows"}
}

// InsufficientData carries a formatted explanation.
func InsufficientData(format string, args ...any) Status {
	return Status{Outcome: OutcomeInsufficientData, Message: fmt.Sprintf(format, args...)}
}

// InvalidSelection carries a formatted explanation.
func InvalidSelection(format string, args ...any) Status {
	return Status{Outcome: OutcomeInvalidColumnSelection, Message: fmt.Sprintf(format, args...)}
}

// ColumnKind is the inferred kind of a column.
type ColumnKind string

const (
	KindNumeric ColumnKind = "numeric"
	KindText    ColumnKind = "text"
)

// ColumnProfile classifies one column from a bounded sample.
type ColumnProfile struct {
	Name         string     `json:"name"`
	Kind         ColumnKind `json:"kind"`
	NumericRatio float64    `json:"numeric_ratio"`
	Sampled      int        `json:"sampled"`
}

// TableOverview summarises table shape and column kinds.
type TableOverview struct {
	TotalRows      int `json:"total_rows"`
	TotalColumns   int `json:"total_columns"`
	NumericColumns int `json:"numeric_columns"`
	TextColumns    int `json:"text_columns"`
}
