package projection

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, body string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var out any
	require.NoError(t, dec.Decode(&out))
	return out
}

func TestValidateWellFormedHistorical(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	raw := decodeRaw(t, `{"date":"2024-01-01","revenue":100.456,"orders_count":4,"conversion_rate":2.5,"avg_order_value":25.11}`)

	point, report := v.Validate(raw)

	assert.Equal(t, ValidatedPoint{
		Date:           "2024-01-01",
		Kind:           enums.PointKindHistorical,
		Revenue:        100.46,
		OrdersCount:    4,
		ConversionRate: 2.5,
		AvgOrderValue:  25.11,
	}, point)
	assert.Equal(t, RecordReport{}, report)
}

func TestValidateDefaultsBadNumericField(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	raw := decodeRaw(t, `{"date":"2024-01-02","revenue":"bad","orders_count":3,"conversion_rate":1,"avg_order_value":5}`)

	point, report := v.Validate(raw)

	assert.Equal(t, 0.0, point.Revenue)
	assert.Equal(t, 3.0, point.OrdersCount)
	assert.Equal(t, 1, report.DefaultedFields)
	assert.False(t, report.Malformed)
}

func TestValidateClampsOutOfBounds(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	point, report := v.Validate(RawPoint{
		"date":            "2024-01-03",
		"revenue":         1e15,
		"orders_count":    -4,
		"conversion_rate": 250,
		"avg_order_value": 2e6,
	})

	assert.Equal(t, 1e9, point.Revenue)
	assert.Equal(t, 0.0, point.OrdersCount)
	assert.Equal(t, 100.0, point.ConversionRate)
	assert.Equal(t, 1e6, point.AvgOrderValue)
	assert.Equal(t, 4, report.ClampedFields)
}

func TestValidateMaximallyMalformedInput(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	for _, raw := range []any{nil, "string", 42, []any{1, 2}, map[string]any{}, RawPoint(nil)} {
		point, report := v.Validate(raw)
		assert.Equal(t, "2025-03-14", point.Date, "raw %#v", raw)
		assert.Equal(t, enums.PointKindHistorical, point.Kind)
		assert.Zero(t, point.Revenue)
		assert.Zero(t, point.OrdersCount)
		assert.Zero(t, point.ConversionRate)
		assert.Zero(t, point.AvgOrderValue)
		assert.Nil(t, point.Confidence)
		assert.Nil(t, point.ConfidenceScore)
		assert.True(t, report.Malformed)
		assert.Equal(t, 5, report.DefaultedFields)
	}
}

func TestValidateKindFromTruthyFlag(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	truthyValues := []any{true, 1, json.Number("2"), "yes", "false", map[string]any{}, []any{}}
	for _, flag := range truthyValues {
		point, _ := v.Validate(RawPoint{"date": "2024-01-01", "isPrediction": flag})
		assert.Equal(t, enums.PointKindPrediction, point.Kind, "flag %#v", flag)
	}

	falsyValues := []any{nil, false, 0, json.Number("0"), "", math.NaN()}
	for _, flag := range falsyValues {
		point, _ := v.Validate(RawPoint{"date": "2024-01-01", "isPrediction": flag})
		assert.Equal(t, enums.PointKindHistorical, point.Kind, "flag %#v", flag)
	}
}

func TestValidateConfidenceIntervalOnlyForPredictions(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	raw := decodeRaw(t, `{
		"date": "2024-02-01",
		"revenue": 50,
		"confidence_interval": {"revenue_min": 40, "revenue_max": 60, "orders_min": "x", "orders_max": 1e12},
		"confidence_score": 1.7
	}`)

	historical, _ := v.Validate(raw)
	assert.Nil(t, historical.Confidence)

	prediction, report := v.ValidateAs(raw, enums.PointKindPrediction)
	require.NotNil(t, prediction.Confidence)
	assert.Equal(t, ConfidenceBands{RevenueMin: 40, RevenueMax: 60, OrdersMin: 0, OrdersMax: 1e6}, *prediction.Confidence)
	require.NotNil(t, prediction.ConfidenceScore)
	assert.Equal(t, 1.0, *prediction.ConfidenceScore)
	// orders_min defaulted plus the three missing measures.
	assert.Equal(t, 4, report.DefaultedFields)
	// orders_max and confidence_score clamped.
	assert.Equal(t, 2, report.ClampedFields)
}

func TestValidateNonObjectIntervalIsAbsent(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	point, _ := v.ValidateAs(RawPoint{"date": "2024-02-01", "confidence_interval": "wide"}, enums.PointKindPrediction)
	assert.Nil(t, point.Confidence)

	point, _ = v.ValidateAs(RawPoint{"date": "2024-02-01", "confidence_score": nil}, enums.PointKindPrediction)
	assert.Nil(t, point.ConfidenceScore)
}

func TestValidateBoundsInvariant(t *testing.T) {
	v := NewValidator(fixedNormalizer())
	samples := []any{nil, -1, 0, 0.5, 99.999, 1e3, 1e7, 1e12, math.Inf(1), math.NaN(), "12", "junk"}
	for _, s := range samples {
		point, _ := v.ValidateAs(RawPoint{
			"date":                "2024-01-01",
			"revenue":             s,
			"orders_count":        s,
			"conversion_rate":     s,
			"avg_order_value":     s,
			"confidence_score":    s,
			"confidence_interval": map[string]any{"revenue_min": s, "revenue_max": s, "orders_min": s, "orders_max": s},
		}, enums.PointKindPrediction)

		assertWithin(t, point.Revenue, RevenueBounds)
		assertWithin(t, point.OrdersCount, OrdersBounds)
		assertWithin(t, point.ConversionRate, ConversionRateBounds)
		assertWithin(t, point.AvgOrderValue, AvgOrderValueBounds)
		if point.ConfidenceScore != nil {
			assertWithin(t, *point.ConfidenceScore, ConfidenceScoreBounds)
		}
		require.NotNil(t, point.Confidence)
		assertWithin(t, point.Confidence.RevenueMin, RevenueBounds)
		assertWithin(t, point.Confidence.RevenueMax, RevenueBounds)
		assertWithin(t, point.Confidence.OrdersMin, OrdersBounds)
		assertWithin(t, point.Confidence.OrdersMax, OrdersBounds)
	}
}

func assertWithin(t *testing.T, v float64, b Bounds) {
	t.Helper()
	assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "value %v not finite", v)
	assert.GreaterOrEqual(t, v, b.Lower)
	assert.LessOrEqual(t, v, b.Upper)
}
