package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custclean/pkg/contracts/domain"
)

func TestQuantile(t *testing.T) {
	xs := []float64{4, 1, 3, 2}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		got, ok := Quantile(xs, tt.p)
		require.True(t, ok)
		assert.InDelta(t, tt.want, got, 1e-9, "p=%v", tt.p)
	}

	assert.Equal(t, []float64{4, 1, 3, 2}, xs, "input must not be reordered")

	_, ok := Quantile(nil, 0.5)
	assert.False(t, ok)
	_, ok = Quantile(xs, 1.5)
	assert.False(t, ok)
}

func TestMeanMedian(t *testing.T) {
	mean, ok := Mean([]float64{1, 2, 3, 10})
	require.True(t, ok)
	assert.Equal(t, 4.0, mean)

	median, ok := Median([]float64{1, 2, 3, 10})
	require.True(t, ok)
	assert.Equal(t, 2.5, median)

	median, ok = Median([]float64{7})
	require.True(t, ok)
	assert.Equal(t, 7.0, median)

	_, ok = Mean(nil)
	assert.False(t, ok)
	_, ok = Median([]float64{})
	assert.False(t, ok)
}

func TestOutlierBounds(t *testing.T) {
	b, ok := OutlierBounds([]float64{1, 2, 3, 4, 100})
	require.True(t, ok)

	assert.Equal(t, 2.0, b.Q1)
	assert.Equal(t, 4.0, b.Q3)
	assert.Equal(t, 2.0, b.IQR)
	assert.Equal(t, -1.0, b.Lower)
	assert.Equal(t, 7.0, b.Upper)

	assert.True(t, b.Contains(7))
	assert.True(t, b.Contains(-1))
	assert.False(t, b.Contains(100))

	_, ok = OutlierBounds(nil)
	assert.False(t, ok)
}

func TestPresentNumbers(t *testing.T) {
	values := []domain.Value{domain.Number(1), domain.Missing(), domain.Text("2"), domain.Number(3)}
	assert.Equal(t, []float64{1, 3}, PresentNumbers(values))
}
