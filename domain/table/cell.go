// Package table defines the parsed tabular input consumed by every analysis:
// ordered headers, positionally aligned rows and a tagged cell variant.
package table

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind tags the variant held by a Cell.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	// KindNested holds object/array content flattened to a display string upstream.
	KindNested
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Cell is a single table value. The zero value is Null.
type Cell struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

// Null returns the missing-value cell.
func Null() Cell { return Cell{} }

// Bool wraps a boolean.
func Bool(v bool) Cell { return Cell{kind: KindBool, b: v} }

// Number wraps a float.
func Number(v float64) Cell { return Cell{kind: KindNumber, n: v} }

// Text wraps a string.
func Text(v string) Cell { return Cell{kind: KindText, s: v} }

// Nested wraps serialized non-scalar content.
func Nested(serialized string) Cell { return Cell{kind: KindNested, s: serialized} }

// Kind returns the variant tag.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell is missing.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// IsBlank reports whether the cell carries no usable value: null or empty text.
// Sampling and statistics skip blank cells.
func (c Cell) IsBlank() bool {
	return c.kind == KindNull || (c.kind == KindText && c.s == "")
}

// IsText reports whether the cell holds a plain string.
func (c Cell) IsText() bool { return c.kind == KindText }

// Raw returns the string payload of Text and Nested cells.
func (c Cell) Raw() string {
	if c.kind == KindText || c.kind == KindNested {
		return c.s
	}
	return ""
}

// String renders the display form used for grouping keys and frequencies.
// Null renders as the empty string.
func (c Cell) String() string {
	switch c.kind {
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindNumber:
		return formatNumber(c.n)
	case KindText, KindNested:
		return c.s
	default:
		return ""
	}
}

// Equal compares variant and payload.
func (c Cell) Equal(o Cell) bool {
	return c == o
}

func formatNumber(f float64) string {
	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes the cell as its natural JSON value. Nested cells are
// emitted as their serialized string.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindBool:
		return json.Marshal(c.b)
	case KindNumber:
		return json.Marshal(c.n)
	case KindText, KindNested:
		return json.Marshal(c.s)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value into a cell; objects and arrays
// become Nested with their compact encoding.
func (c *Cell) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*c = Null()
		return nil
	}
	switch trimmed[0] {
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(trimmed)); err != nil {
			return err
		}
		*c = Nested(buf.String())
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Text(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*c = Bool(b)
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*c = Number(f)
		return nil
	}
}
