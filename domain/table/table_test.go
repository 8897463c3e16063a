package table

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablens/domain/core"
)

func TestNewRejectsArityMismatch(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]Cell{
		{Number(1), Number(2)},
		{Number(3)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRowArity)
	assert.True(t, core.IsInvalidTable(err))
}

func TestNewRejectsDuplicateAndEmptyHeaders(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil)
	assert.ErrorIs(t, err, core.ErrDuplicateHeader)

	_, err = New([]string{"a", " "}, nil)
	assert.ErrorIs(t, err, core.ErrEmptyHeader)
}

func TestColumnAccess(t *testing.T) {
	tbl, err := New([]string{"name", "score"}, [][]Cell{
		{Text("ann"), Number(1)},
		{Null(), Text("2")},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2, tbl.Width())
	assert.Equal(t, 1, tbl.Index("score"))
	assert.Equal(t, -1, tbl.Index("missing"))

	col, ok := tbl.Column("name")
	require.True(t, ok)
	assert.Equal(t, []Cell{Text("ann"), Null()}, col)
	assert.Len(t, NonBlank(col), 1)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)

	var nilTable *Table
	assert.True(t, nilTable.IsEmpty())
	assert.Equal(t, -1, nilTable.Index("x"))
}

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want float64
		ok   bool
	}{
		{"number", Number(2.5), 2.5, true},
		{"true", Bool(true), 1, true},
		{"false", Bool(false), 0, true},
		{"numeric text", Text(" 42 "), 42, true},
		{"scientific", Text("1e3"), 1000, true},
		{"hex", Text("0x1F"), 31, true},
		{"negative", Text("-3.5"), -3.5, true},
		{"word", Text("abc"), 0, false},
		{"thousands separator", Text("1,234"), 0, false},
		{"blank", Text(""), 0, false},
		{"infinity", Text("Infinity"), 0, false},
		{"null", Null(), 0, false},
		{"nested", Nested(`[5]`), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cell.Float()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, Coerce(tt.cell))
		})
	}
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "1e+21", Number(1e21).String())
	assert.Equal(t, "hi", Text("hi").String())
	assert.Equal(t, `{"a":1}`, Nested(`{"a":1}`).String())
	assert.True(t, Text("").IsBlank())
	assert.False(t, Number(0).IsBlank())
}

func TestCellJSONRoundTrip(t *testing.T) {
	var cells []Cell
	require.NoError(t, json.Unmarshal([]byte(`[null, true, 1.5, "x", {"a": [1, 2]}, [1]]`), &cells))

	require.Len(t, cells, 6)
	assert.Equal(t, KindNull, cells[0].Kind())
	assert.Equal(t, Bool(true), cells[1])
	assert.Equal(t, Number(1.5), cells[2])
	assert.Equal(t, Text("x"), cells[3])
	assert.Equal(t, Nested(`{"a":[1,2]}`), cells[4])
	assert.Equal(t, Nested(`[1]`), cells[5])

	out, err := json.Marshal(cells[:4])
	require.NoError(t, err)
	assert.JSONEq(t, `[null, true, 1.5, "x"]`, string(out))
}

func TestFromValue(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, Null(), FromValue(nil))
	assert.Equal(t, Number(7), FromValue(int64(7)))
	assert.Equal(t, Number(7), FromValue(json.Number("7")))
	assert.Equal(t, Text("abc"), FromValue([]byte("abc")))
	assert.Equal(t, Text("2024-01-02T03:04:05Z"), FromValue(ts))
	assert.Equal(t, Nested(`{"k":"v"}`), FromValue(map[string]any{"k": "v"}))
	assert.Equal(t, Nested(`[1,2]`), FromValue([]int{1, 2}))

	var p *int
	assert.Equal(t, Null(), FromValue(p))
}

func TestFromRecordsFillsMissingWithNull(t *testing.T) {
	tbl, err := FromRecords([]string{"a", "b"}, []map[string]any{
		{"a": 1, "b": "x"},
		{"a": 2, "extra": true},
	})
	require.NoError(t, err)
	assert.Equal(t, Null(), tbl.Rows[1][1])
	assert.Equal(t, Number(2), tbl.Rows[1][0])
}

func TestFromMatrix(t *testing.T) {
	tbl, err := FromMatrix([][]any{
		{"city", "amount"},
		{"Oslo", 10},
		{"Bergen"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "amount"}, tbl.Headers)
	assert.Equal(t, Null(), tbl.Rows[1][1])

	_, err = FromMatrix([][]any{{"a"}, {1, 2}})
	assert.ErrorIs(t, err, core.ErrRowArity)
}

func TestFlatten(t *testing.T) {
	keys, flat := Flatten(map[string]any{
		"user": map[string]any{"name": "ann", "address": map[string]any{"city": "Oslo"}},
		"tags": []any{"a", "b"},
	})
	assert.Equal(t, []string{"tags", "user.address.city", "user.name"}, keys)
	assert.Equal(t, "Oslo", flat["user.address.city"])
}
