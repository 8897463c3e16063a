package descriptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablens/internal/profiling"
	"tablens/internal/testkit"
)

func TestShapeUniform(t *testing.T) {
	shape, ok := Shape([]float64{1, 2, 3, 4, 5})
	require.True(t, ok)

	assert.Equal(t, 1.5, shape.Q1)
	assert.Equal(t, 4.5, shape.Q3)
	assert.Equal(t, 3.0, shape.IQR)
	assert.Equal(t, 0, shape.Outliers)
	assert.InDelta(t, 0, shape.Skewness, 1e-9)
	assert.InDelta(t, -1.2, shape.Kurtosis, 1e-9)
	assert.InDelta(t, math.Exp(-0.15), shape.NormalityP, 1e-6)
	assert.True(t, shape.Normal)
}

func TestShapeOutlier(t *testing.T) {
	shape, ok := Shape([]float64{10, 11, 12, 13, 14, 15, 16, 100})
	require.True(t, ok)

	assert.Equal(t, 11.5, shape.Q1)
	assert.Equal(t, 15.5, shape.Q3)
	assert.Equal(t, 1, shape.Outliers)
	assert.Greater(t, shape.Skewness, 0.0)
}

func TestShapeUndefined(t *testing.T) {
	_, ok := Shape([]float64{1, 2, 3})
	assert.False(t, ok)

	_, ok = Shape([]float64{7, 7, 7, 7, 7})
	assert.False(t, ok)
}

func TestComputeAttachesShapes(t *testing.T) {
	result := Compute(testkit.ScoresTable(t), profiling.StatisticsOptions)
	require.True(t, result.OK())
	assert.Contains(t, result.Shapes, "score")

	result = Compute(testkit.LinearTable(t), profiling.StatisticsOptions)
	assert.Empty(t, result.Shapes)
}
