package projection

import (
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
)

// Synthetic band applied to conversion rate points that carry no explicit interval.
const (
	conversionBandLow  = 0.8
	conversionBandHigh = 1.2
)

// Project maps series onto the per-point view of metric. The result has exactly one entry
// per input point, in the same order.
func Project(series []ValidatedPoint, metric enums.Metric) (MetricProjection, error) {
	if !metric.IsValid() {
		return nil, unknownMetric(metric)
	}

	out := make(MetricProjection, len(series))
	for i, point := range series {
		value, err := point.Value(metric)
		if err != nil {
			return nil, err
		}

		projected := ProjectedPoint{
			Date:         point.Date,
			Value:        value,
			IsPrediction: point.IsPrediction(),
		}

		interval, hasInterval := point.Confidence.For(metric)
		switch {
		case point.IsPrediction() && hasInterval:
			projected.ConfidenceMin = interval.Min
			projected.ConfidenceMax = interval.Max
		case metric == enums.MetricConversionRate:
			// Placeholder band kept for chart compatibility; applies to every point.
			projected.ConfidenceMin = round2(value * conversionBandLow)
			projected.ConfidenceMax = round2(value * conversionBandHigh)
		}

		if point.ConfidenceScore != nil {
			projected.ConfidenceScore = *point.ConfidenceScore
		}

		out[i] = projected
	}
	return out, nil
}
