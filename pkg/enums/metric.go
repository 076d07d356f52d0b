package enums

import "fmt"

// Metric identifies a measured quantity that can be projected and charted.
type Metric string

const (
	MetricRevenue        Metric = "revenue"
	MetricOrdersCount    Metric = "orders_count"
	MetricConversionRate Metric = "conversion_rate"
	MetricAvgOrderValue  Metric = "avg_order_value"
)

var validMetrics = []Metric{
	MetricRevenue,
	MetricOrdersCount,
	MetricConversionRate,
	MetricAvgOrderValue,
}

// Metrics returns the supported metrics in canonical order.
func Metrics() []Metric {
	out := make([]Metric, len(validMetrics))
	copy(out, validMetrics)
	return out
}

// String implements fmt.Stringer.
func (m Metric) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Metric.
func (m Metric) IsValid() bool {
	for _, candidate := range validMetrics {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMetric converts raw input into a Metric.
func ParseMetric(value string) (Metric, error) {
	for _, candidate := range validMetrics {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid metric %q", value)
}
