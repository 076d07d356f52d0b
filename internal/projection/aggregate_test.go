package projection

import (
	"errors"
	"math"
	"testing"

	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateFlatSeries(t *testing.T) {
	historical := []ValidatedPoint{hist("2024-01-01", 100), hist("2024-01-02", 100), hist("2024-01-03", 100)}
	predictions := []ValidatedPoint{pred("2024-01-04", 100)}

	stats, err := Aggregate(historical, predictions, enums.MetricRevenue, Windows{})
	require.NoError(t, err)
	assert.Equal(t, AggregateStats{
		CurrentTotal:             300,
		CurrentAverage:           100,
		ForecastTotal:            100,
		ForecastAverage:          100,
		GrowthRatePercent:        0,
		CurrentPeriodPointCount:  3,
		ForecastPeriodPointCount: 1,
	}, stats)
}

func TestAggregateGrowth(t *testing.T) {
	historical := []ValidatedPoint{hist("2024-01-01", 80), hist("2024-01-02", 120)}
	predictions := []ValidatedPoint{pred("2024-01-03", 150), pred("2024-01-04", 100)}

	stats, err := Aggregate(historical, predictions, enums.MetricRevenue, Windows{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, stats.CurrentAverage)
	assert.Equal(t, 125.0, stats.ForecastAverage)
	assert.Equal(t, 25.0, stats.GrowthRatePercent)
}

func TestAggregateWindowsSliceEnds(t *testing.T) {
	var historical, predictions []ValidatedPoint
	for i := 1; i <= 10; i++ {
		historical = append(historical, hist("2024-01-01", float64(i)))
		predictions = append(predictions, pred("2024-02-01", float64(i*10)))
	}

	stats, err := Aggregate(historical, predictions, enums.MetricRevenue, Windows{Current: 3, Forecast: 2})
	require.NoError(t, err)
	// last three historical: 8, 9, 10; first two predictions: 10, 20
	assert.Equal(t, 27.0, stats.CurrentTotal)
	assert.Equal(t, 9.0, stats.CurrentAverage)
	assert.Equal(t, 30.0, stats.ForecastTotal)
	assert.Equal(t, 15.0, stats.ForecastAverage)
	assert.Equal(t, 66.67, stats.GrowthRatePercent)
	assert.Equal(t, 3, stats.CurrentPeriodPointCount)
	assert.Equal(t, 2, stats.ForecastPeriodPointCount)
}

func TestAggregateEmptyInputs(t *testing.T) {
	stats, err := Aggregate(nil, nil, enums.MetricOrdersCount, Windows{})
	require.NoError(t, err)
	assert.Equal(t, AggregateStats{}, stats)
}

func TestAggregateZeroCurrentTotalHasNoGrowth(t *testing.T) {
	historical := []ValidatedPoint{hist("2024-01-01", 0)}
	predictions := []ValidatedPoint{pred("2024-01-02", 500)}

	stats, err := Aggregate(historical, predictions, enums.MetricRevenue, Windows{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.GrowthRatePercent)
	assert.Equal(t, 500.0, stats.ForecastAverage)
}

func TestAggregateNoForecastHasNoGrowth(t *testing.T) {
	historical := []ValidatedPoint{hist("2024-01-01", 100)}

	stats, err := Aggregate(historical, nil, enums.MetricRevenue, Windows{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.GrowthRatePercent)
	assert.Equal(t, 0, stats.ForecastPeriodPointCount)
}

func TestAggregateValuesAreFinite(t *testing.T) {
	cases := [][2][]ValidatedPoint{
		{nil, nil},
		{{hist("2024-01-01", 0)}, nil},
		{nil, {pred("2024-01-01", 1e9)}},
		{{hist("2024-01-01", 0.01)}, {pred("2024-01-02", 1e9)}},
	}
	for _, tc := range cases {
		stats, err := Aggregate(tc[0], tc[1], enums.MetricRevenue, Windows{})
		require.NoError(t, err)
		for _, v := range []float64{stats.CurrentTotal, stats.CurrentAverage, stats.ForecastTotal, stats.ForecastAverage, stats.GrowthRatePercent} {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

func TestAggregateUnknownMetric(t *testing.T) {
	_, err := Aggregate(nil, nil, enums.Metric("nope"), Windows{})
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestWindowsNormalize(t *testing.T) {
	assert.Equal(t, Windows{Current: 7, Forecast: 30}, Windows{Current: -1}.Normalize())
	assert.Equal(t, Windows{Current: 14, Forecast: 90}, Windows{Current: 14, Forecast: 90}.Normalize())
}
