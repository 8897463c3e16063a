// Package testkit provides deterministic table fixtures for tests.
package testkit

import (
	"testing"

	"tablens/domain/table"
)

// MustTable builds a table or fails the test.
func MustTable(tb testing.TB, headers []string, rows [][]table.Cell) *table.Table {
	tb.Helper()
	t, err := table.New(headers, rows)
	if err != nil {
		tb.Fatalf("build table: %v", err)
	}
	return t
}

// Numbers turns floats into Number cells.
func Numbers(vs ...float64) []table.Cell {
	out := make([]table.Cell, len(vs))
	for i, v := range vs {
		out[i] = table.Number(v)
	}
	return out
}

// Texts turns strings into Text cells.
func Texts(vs ...string) []table.Cell {
	out := make([]table.Cell, len(vs))
	for i, v := range vs {
		out[i] = table.Text(v)
	}
	return out
}

// Columns assembles a table column-wise. All columns must have equal length.
func Columns(tb testing.TB, headers []string, cols ...[]table.Cell) *table.Table {
	tb.Helper()
	if len(headers) != len(cols) {
		tb.Fatalf("got %d headers for %d columns", len(headers), len(cols))
	}
	n := 0
	if len(cols) > 0 {
		n = len(cols[0])
	}
	rows := make([][]table.Cell, n)
	for r := 0; r < n; r++ {
		row := make([]table.Cell, len(cols))
		for c, col := range cols {
			if len(col) != n {
				tb.Fatalf("column %q has %d cells, want %d", headers[c], len(col), n)
			}
			row[c] = col[r]
		}
		rows[r] = row
	}
	return MustTable(tb, headers, rows)
}

// ScoresTable is a single numeric column [1,2,3,4,5].
func ScoresTable(tb testing.TB) *table.Table {
	return Columns(tb, []string{"score"}, Numbers(1, 2, 3, 4, 5))
}

// LinearTable has y = 2x over three rows.
func LinearTable(tb testing.TB) *table.Table {
	return Columns(tb, []string{"x", "y"}, Numbers(1, 2, 3), Numbers(2, 4, 6))
}

// CategoryAmountTable has category [A,A,B] and amount [10,20,5].
func CategoryAmountTable(tb testing.TB) *table.Table {
	return Columns(tb, []string{"category", "amount"}, Texts("A", "A", "B"), Numbers(10, 20, 5))
}

// ReviewsTable holds one positive, one negative and one neutral review.
func ReviewsTable(tb testing.TB) *table.Table {
	return Columns(tb, []string{"review"}, Texts("good product", "bad service", "okay"))
}

// EmptyTable has headers but no rows.
func EmptyTable(tb testing.TB) *table.Table {
	return MustTable(tb, []string{"category", "amount", "review"}, nil)
}

// ShoppingTable generates an order table with the default config and seed.
func ShoppingTable(tb testing.TB, orders int) *table.Table {
	tb.Helper()
	cfg := DefaultShoppingConfig()
	cfg.OrderCount = orders
	t, err := NewShoppingDataGenerator(cfg).GenerateTable()
	if err != nil {
		tb.Fatalf("generate shopping table: %v", err)
	}
	return t
}
