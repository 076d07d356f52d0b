package projection

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
)

// ErrUnknownMetric is returned when a caller requests a metric the pipeline does not know.
// It signals a caller bug rather than bad data.
var ErrUnknownMetric = errors.New("unknown metric")

func unknownMetric(metric enums.Metric) error {
	return fmt.Errorf("%w %q", ErrUnknownMetric, string(metric))
}

// RawPoint is an untrusted series entry as decoded from JSON.
type RawPoint map[string]any

// Payload is the input contract produced by the data-fetching collaborator. Every field is
// untrusted: series may be missing or not arrays, and entries may be anything.
type Payload struct {
	Historical   any `json:"historical"`
	Predictions  any `json:"predictions"`
	TotalRevenue any `json:"total_revenue,omitempty"`
	TotalOrders  any `json:"total_orders,omitempty"`
	PeriodDays   any `json:"period_days,omitempty"`
}

// ConfidenceInterval is a [Min, Max] band for one metric. Min <= Max is not enforced.
type ConfidenceInterval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ConfidenceBands holds the sanitized confidence_interval object of a prediction.
type ConfidenceBands struct {
	RevenueMin float64 `json:"revenue_min"`
	RevenueMax float64 `json:"revenue_max"`
	OrdersMin  float64 `json:"orders_min"`
	OrdersMax  float64 `json:"orders_max"`
}

// For returns the band scaled to metric, or false when the bands carry none for it.
func (b *ConfidenceBands) For(metric enums.Metric) (ConfidenceInterval, bool) {
	if b == nil {
		return ConfidenceInterval{}, false
	}
	switch metric {
	case enums.MetricRevenue:
		return ConfidenceInterval{Min: b.RevenueMin, Max: b.RevenueMax}, true
	case enums.MetricOrdersCount:
		return ConfidenceInterval{Min: b.OrdersMin, Max: b.OrdersMax}, true
	default:
		return ConfidenceInterval{}, false
	}
}

// ValidatedPoint is a trusted sample: every measure is finite and inside its bounds and
// Date is a valid YYYY-MM-DD day.
type ValidatedPoint struct {
	Date            string           `json:"date"`
	Kind            enums.PointKind  `json:"kind"`
	Revenue         float64          `json:"revenue"`
	OrdersCount     float64          `json:"orders_count"`
	ConversionRate  float64          `json:"conversion_rate"`
	AvgOrderValue   float64          `json:"avg_order_value"`
	Confidence      *ConfidenceBands `json:"confidence_interval,omitempty"`
	ConfidenceScore *float64         `json:"confidence_score,omitempty"`
}

// IsPrediction reports whether the point is a forecast.
func (p ValidatedPoint) IsPrediction() bool {
	return p.Kind == enums.PointKindPrediction
}

// Value returns the measure selected by metric.
func (p ValidatedPoint) Value(metric enums.Metric) (float64, error) {
	switch metric {
	case enums.MetricRevenue:
		return p.Revenue, nil
	case enums.MetricOrdersCount:
		return p.OrdersCount, nil
	case enums.MetricConversionRate:
		return p.ConversionRate, nil
	case enums.MetricAvgOrderValue:
		return p.AvgOrderValue, nil
	default:
		return 0, unknownMetric(metric)
	}
}

// ProjectedPoint is the minimal per-point view a chart renders.
type ProjectedPoint struct {
	Date            string  `json:"date"`
	Value           float64 `json:"value"`
	IsPrediction    bool    `json:"is_prediction"`
	ConfidenceMin   float64 `json:"confidence_min"`
	ConfidenceMax   float64 `json:"confidence_max"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// MetricProjection is one metric's view over a merged series, one entry per point.
type MetricProjection []ProjectedPoint

// AggregateStats summarizes a trailing historical window against a leading forecast window.
type AggregateStats struct {
	CurrentTotal             float64 `json:"current_total"`
	CurrentAverage           float64 `json:"current_average"`
	ForecastTotal            float64 `json:"forecast_total"`
	ForecastAverage          float64 `json:"forecast_average"`
	GrowthRatePercent        float64 `json:"growth_rate_percent"`
	CurrentPeriodPointCount  int     `json:"current_period_point_count"`
	ForecastPeriodPointCount int     `json:"forecast_period_point_count"`
}

// Source tells whether a total came from the payload or was summed from the series.
type Source string

const (
	SourceOverride Source = "override"
	SourceComputed Source = "computed"
)

// Totals are period-level figures for the headline of a chart.
type Totals struct {
	Revenue       float64 `json:"revenue"`
	RevenueSource Source  `json:"revenue_source"`
	Orders        float64 `json:"orders"`
	OrdersSource  Source  `json:"orders_source"`
	PeriodDays    float64 `json:"period_days"`
}

// Diagnostics counts how much repairing the validator had to do.
type Diagnostics struct {
	Records         int `json:"records"`
	Malformed       int `json:"malformed"`
	Dropped         int `json:"dropped"`
	DefaultedFields int `json:"defaulted_fields"`
	ClampedFields   int `json:"clamped_fields"`
}

func (d *Diagnostics) add(r RecordReport) {
	d.Records++
	d.DefaultedFields += r.DefaultedFields
	d.ClampedFields += r.ClampedFields
	if r.Malformed {
		d.Malformed++
	}
}

// entries turns an untrusted series value into a list of raw entries. Anything that is not
// a slice or array is treated as an empty series.
func entries(series any) []any {
	switch v := series.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []RawPoint:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	}

	rv := reflect.ValueOf(series)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
