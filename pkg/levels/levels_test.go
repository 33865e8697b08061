package levels

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		index  int
	}{
		{"empty", nil, -1},
		{"single", []float64{1.0}, -1},
		{"decreasing", []float64{2.0, 1.0}, 1},
		{"equal", []float64{1.0, 2.0, 2.0}, 2},
		{"below range", []float64{0.05, 1.0}, 0},
		{"above range", []float64{1.0, 12.0}, 1},
		{"nan", []float64{1.0, math.NaN(), 4.0}, 1},
		{"leading nan", []float64{math.NaN(), 4.0}, 0},
		{"infinite", []float64{1.0, math.Inf(1)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.values...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfig))

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.index, cerr.Index)
		})
	}
}

func TestSetIsAllOrNothing(t *testing.T) {
	table, err := New(1, 2, 4)
	require.NoError(t, err)

	err = table.Set(1, 3, 2, 8)
	require.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, []float64{1, 2, 4}, table.Values())

	require.NoError(t, table.Set(0.5, 1, 3))
	assert.Equal(t, []float64{0.5, 1, 3}, table.Values())
}

func TestNewCopiesInput(t *testing.T) {
	in := []float64{1, 2}
	table, err := New(in...)
	require.NoError(t, err)
	in[0] = 9
	assert.Equal(t, 1.0, table.Min())
}

func TestMinMaxBoundEveryLevel(t *testing.T) {
	for _, values := range [][]float64{{1, 4}, {0.1, 10}, {0.5, 1, 2, 3, 5}} {
		table, err := New(values...)
		require.NoError(t, err)
		for i := 0; i < table.Len(); i++ {
			assert.LessOrEqual(t, table.Min(), table.At(i))
			assert.GreaterOrEqual(t, table.Max(), table.At(i))
		}
		assert.Equal(t, table.Len()-1, table.LevelFor(table.Max()))
	}
}

func TestLevelFor(t *testing.T) {
	table, err := New(1, 2, 4)
	require.NoError(t, err)

	tests := []struct {
		scale float64
		want  int
	}{
		{0.5, -1},
		{1, 0},
		{1.99, 0},
		{2, 1},
		{3.5, 1},
		{4, 2},
		{9, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.LevelFor(tt.scale), "scale=%v", tt.scale)
	}
}

func TestDefault(t *testing.T) {
	table := Default()
	assert.Equal(t, 1.0, table.Min())
	assert.Equal(t, 4.0, table.Max())
}
