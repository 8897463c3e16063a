package api

import (
	"sort"

	"tablens/domain/table"
	"tablens/internal/errors"
)

// TablePayload is the wire form of a table: either positional rows under a
// header list, or key-value records whose first-seen keys become headers.
type TablePayload struct {
	Headers []string                 `json:"headers"`
	Rows    [][]table.Cell           `json:"rows"`
	Records []map[string]interface{} `json:"records"`
}

// Build validates the payload into a table. Arity errors map to
// INVALID_TABLE.
func (p *TablePayload) Build() (*table.Table, error) {
	if p == nil {
		return nil, errors.InvalidInput("table is required")
	}
	if len(p.Records) > 0 {
		headers := p.Headers
		if len(headers) == 0 {
			headers = recordHeaders(p.Records)
		}
		t, err := table.FromRecords(headers, p.Records)
		if err != nil {
			return nil, errors.InvalidTable("invalid table", err)
		}
		return t, nil
	}
	rows := p.Rows
	if rows == nil {
		rows = [][]table.Cell{}
	}
	t, err := table.New(p.Headers, rows)
	if err != nil {
		return nil, errors.InvalidTable("invalid table", err)
	}
	return t, nil
}

// recordHeaders collects keys in sorted order per record, first record
// first; JSON objects decoded into maps carry no key order.
func recordHeaders(records []map[string]interface{}) []string {
	seen := make(map[string]bool)
	var headers []string
	for _, r := range records {
		for _, k := range sortedKeys(r) {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	return headers
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type tableRequest struct {
	Table *TablePayload `json:"table"`
}

type profilesRequest struct {
	Table   *TablePayload `json:"table"`
	Purpose string        `json:"purpose"`
}

type correlationRequest struct {
	Table   *TablePayload `json:"table"`
	Columns []string      `json:"columns"`
}

type scatterRequest struct {
	Table *TablePayload `json:"table"`
	X     string        `json:"x"`
	Y     string        `json:"y"`
}

type chartRequest struct {
	Table         *TablePayload `json:"table"`
	XColumn       string        `json:"x_column"`
	Measures      []string      `json:"measures"`
	GroupColumn   string        `json:"group_column"`
	Percentage    bool          `json:"percentage"`
	MaxPartitions int           `json:"max_partitions"`
}

type wordsRequest struct {
	Table  *TablePayload `json:"table"`
	Column string        `json:"column"`
	TopN   int           `json:"top_n"`
}

type wordCloudRequest struct {
	Table  *TablePayload `json:"table"`
	Column string        `json:"column"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Scheme string        `json:"scheme"`
	Seed   int64         `json:"seed"`
}

type reportRequest struct {
	Table *TablePayload `json:"table"`
	Title string        `json:"title"`
}
