package table

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"time"

	"tablens/domain/core"
)

// FromValue converts a Go value (as produced by encoding/json, database/sql
// scanners or spreadsheet readers) into a Cell. Non-scalar values become
// Nested holding their JSON encoding.
func FromValue(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Null()
	case Cell:
		return x
	case bool:
		return Bool(x)
	case string:
		return Text(x)
	case []byte:
		return Text(string(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return Text(x.String())
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case time.Time:
		return Text(x.Format(time.RFC3339))
	case fmt.Stringer:
		return Text(x.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return Text(fmt.Sprint(v))
		}
		return Nested(string(b))
	case reflect.Pointer:
		if rv.IsNil() {
			return Null()
		}
		return FromValue(rv.Elem().Interface())
	}
	return Text(fmt.Sprint(v))
}

// FromRecords builds a table from key-value rows. Headers fix the column
// set and order; a key absent from a record becomes Null and keys outside
// the header set are ignored.
func FromRecords(headers []string, records []map[string]any) (*Table, error) {
	rows := make([][]Cell, len(records))
	for i, rec := range records {
		row := make([]Cell, len(headers))
		for j, h := range headers {
			row[j] = FromValue(rec[h])
		}
		rows[i] = row
	}
	return New(headers, rows)
}

// FromMatrix builds a table from a header row followed by positional rows.
// Short rows are padded with Null; rows wider than the header are rejected.
func FromMatrix(matrix [][]any) (*Table, error) {
	if len(matrix) == 0 {
		return New(nil, nil)
	}
	headers := make([]string, len(matrix[0]))
	for i, h := range matrix[0] {
		headers[i] = FromValue(h).String()
	}
	rows := make([][]Cell, 0, len(matrix)-1)
	for i, raw := range matrix[1:] {
		if len(raw) > len(headers) {
			return nil, core.NewArityError(i+1, len(raw), len(headers))
		}
		row := make([]Cell, len(headers))
		for j, v := range raw {
			row[j] = FromValue(v)
		}
		rows = append(rows, row)
	}
	return New(headers, rows)
}

// Flatten turns a nested object into dotted keys ("a.b.c"). Arrays and
// scalars are leaves. Keys are returned sorted so the column order is
// deterministic.
func Flatten(obj map[string]any) ([]string, map[string]any) {
	flat := make(map[string]any)
	flattenInto(flat, "", obj)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, flat
}

func flattenInto(dst map[string]any, prefix string, obj map[string]any) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]any); ok {
			flattenInto(dst, key, child)
			continue
		}
		dst[key] = v
	}
}
