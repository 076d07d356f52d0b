package analytics

import (
	"github.com/angelmondragon/packfinderz-insights/internal/analytics/types"
	"github.com/angelmondragon/packfinderz-insights/internal/projection"
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
)

// Catalog lists the supported metrics with their bounds and how their confidence band is
// derived.
func Catalog() []types.MetricInfo {
	return []types.MetricInfo{
		{
			Key:            enums.MetricRevenue,
			Label:          "Revenue",
			Unit:           "currency",
			Lower:          projection.RevenueBounds.Lower,
			Upper:          projection.RevenueBounds.Upper,
			ConfidenceBand: "prediction_interval",
		},
		{
			Key:            enums.MetricOrdersCount,
			Label:          "Orders",
			Unit:           "count",
			Lower:          projection.OrdersBounds.Lower,
			Upper:          projection.OrdersBounds.Upper,
			ConfidenceBand: "prediction_interval",
		},
		{
			Key:            enums.MetricConversionRate,
			Label:          "Conversion rate",
			Unit:           "percent",
			Lower:          projection.ConversionRateBounds.Lower,
			Upper:          projection.ConversionRateBounds.Upper,
			ConfidenceBand: "synthetic",
		},
		{
			Key:            enums.MetricAvgOrderValue,
			Label:          "Average order value",
			Unit:           "currency",
			Lower:          projection.AvgOrderValueBounds.Lower,
			Upper:          projection.AvgOrderValueBounds.Upper,
			ConfidenceBand: "none",
		},
	}
}
