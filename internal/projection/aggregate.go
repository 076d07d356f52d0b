package projection

import (
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	DefaultCurrentWindow  = 7
	DefaultForecastWindow = 30
)

// Windows selects how many points each side of the comparison covers.
type Windows struct {
	Current  int `json:"current"`
	Forecast int `json:"forecast"`
}

// Normalize replaces non-positive windows with the defaults.
func (w Windows) Normalize() Windows {
	if w.Current <= 0 {
		w.Current = DefaultCurrentWindow
	}
	if w.Forecast <= 0 {
		w.Forecast = DefaultForecastWindow
	}
	return w
}

// Aggregate compares the last windows.Current historical points with the first
// windows.Forecast predictions. Empty windows produce zeros, never NaN or Inf.
func Aggregate(historical, predictions []ValidatedPoint, metric enums.Metric, windows Windows) (AggregateStats, error) {
	if !metric.IsValid() {
		return AggregateStats{}, unknownMetric(metric)
	}
	windows = windows.Normalize()

	current := historical
	if len(current) > windows.Current {
		current = current[len(current)-windows.Current:]
	}
	forecast := predictions
	if len(forecast) > windows.Forecast {
		forecast = forecast[:windows.Forecast]
	}

	currentTotal, err := sum(current, metric)
	if err != nil {
		return AggregateStats{}, err
	}
	forecastTotal, err := sum(forecast, metric)
	if err != nil {
		return AggregateStats{}, err
	}

	currentAvg := average(currentTotal, len(current))
	forecastAvg := average(forecastTotal, len(forecast))

	growth := decimal.Zero
	if !currentTotal.IsZero() && len(forecast) > 0 {
		growth = forecastAvg.Sub(currentAvg).Div(currentAvg).Mul(decimal.NewFromInt(100))
	}

	return AggregateStats{
		CurrentTotal:             currentTotal.Round(2).InexactFloat64(),
		CurrentAverage:           currentAvg.Round(2).InexactFloat64(),
		ForecastTotal:            forecastTotal.Round(2).InexactFloat64(),
		ForecastAverage:          forecastAvg.Round(2).InexactFloat64(),
		GrowthRatePercent:        growth.Round(2).InexactFloat64(),
		CurrentPeriodPointCount:  len(current),
		ForecastPeriodPointCount: len(forecast),
	}, nil
}

func sum(points []ValidatedPoint, metric enums.Metric) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range points {
		v, err := p.Value(metric)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total, nil
}

func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

func partition(series []ValidatedPoint) (historical, predictions []ValidatedPoint) {
	for _, p := range series {
		if p.IsPrediction() {
			predictions = append(predictions, p)
		} else {
			historical = append(historical, p)
		}
	}
	return historical, predictions
}
