package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingDataGenerator_Basic(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.OrderCount = 50

	tbl, err := NewShoppingDataGenerator(cfg).GenerateTable()
	require.NoError(t, err)

	assert.Equal(t, 50, tbl.Len())
	assert.Equal(t, ShoppingHeaders, tbl.Headers)
	for i, row := range tbl.Rows {
		assert.Len(t, row, len(ShoppingHeaders), "row %d", i)
		assert.False(t, row[0].IsBlank(), "row %d has empty order id", i)
	}
}

func TestShoppingDataGenerator_Deterministic(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.OrderCount = 30

	a, err := NewShoppingDataGenerator(cfg).GenerateTable()
	require.NoError(t, err)
	b, err := NewShoppingDataGenerator(cfg).GenerateTable()
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)

	cfg.Seed = 7
	c, err := NewShoppingDataGenerator(cfg).GenerateTable()
	require.NoError(t, err)
	assert.NotEqual(t, a.Rows, c.Rows)
}

func TestFixtures(t *testing.T) {
	assert.Equal(t, 5, ScoresTable(t).Len())
	assert.Equal(t, []string{"x", "y"}, LinearTable(t).Headers)
	assert.True(t, EmptyTable(t).IsEmpty())
	assert.Equal(t, 3, ReviewsTable(t).Len())
}
