package types

import (
	"time"

	"github.com/angelmondragon/packfinderz-insights/internal/projection"
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
)

// ProjectionRequest carries one chart request: the untrusted payload plus view options.
type ProjectionRequest struct {
	Payload            *projection.Payload
	Metrics            []enums.Metric
	IncludePredictions bool
	CurrentWindow      int
	ForecastWindow     int
	Policy             enums.FilterPolicy
}

// MetricView is the chart-ready projection of a single metric.
type MetricView struct {
	Metric enums.Metric                `json:"metric"`
	Points projection.MetricProjection `json:"points"`
	Stats  projection.AggregateStats   `json:"stats"`
}

// ProjectionResponse wraps every requested metric along with payload-level figures.
type ProjectionResponse struct {
	Metrics            []MetricView           `json:"metrics"`
	Totals             projection.Totals      `json:"totals"`
	Diagnostics        projection.Diagnostics `json:"diagnostics"`
	Windows            projection.Windows     `json:"windows"`
	Policy             enums.FilterPolicy     `json:"policy"`
	IncludePredictions bool                   `json:"include_predictions"`
	GeneratedAt        time.Time              `json:"generated_at"`
}

// MetricInfo describes a supported metric for clients building pickers.
type MetricInfo struct {
	Key            enums.Metric `json:"key"`
	Label          string       `json:"label"`
	Unit           string       `json:"unit"`
	Lower          float64      `json:"lower"`
	Upper          float64      `json:"upper"`
	ConfidenceBand string       `json:"confidence_band"`
}
