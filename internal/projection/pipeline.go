package projection

import (
	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	"github.com/shopspring/decimal"
)

// Bounds for the period-level overrides carried by a payload.
var (
	TotalRevenueBounds = Bounds{Lower: 0, Upper: 1e12}
	TotalOrdersBounds  = Bounds{Lower: 0, Upper: 1e9}
	PeriodDaysBounds   = Bounds{Lower: 0, Upper: 3660}
)

// Options are the view options a chart toggles. The struct is comparable so it can key a memo.
type Options struct {
	Metric             enums.Metric
	IncludePredictions bool
	Windows            Windows
	Policy             enums.FilterPolicy
}

// Normalize fills defaults and rejects unknown metrics. Unknown policies fall back to
// keep_with_defaults.
func (o Options) Normalize() (Options, error) {
	if !o.Metric.IsValid() {
		return o, unknownMetric(o.Metric)
	}
	if o.Policy == "" {
		o.Policy = enums.FilterPolicyKeepWithDefaults
	}
	if !o.Policy.IsValid() {
		o.Policy = enums.FilterPolicyKeepWithDefaults
	}
	o.Windows = o.Windows.Normalize()
	return o, nil
}

// Prepared is the validated, filtered and date-ordered content of a payload.
type Prepared struct {
	Historical  []ValidatedPoint
	Predictions []ValidatedPoint
	Totals      Totals
	Diagnostics Diagnostics
}

// Result is everything one chart needs for one metric. Results may be shared by a View
// and must be treated as read-only.
type Result struct {
	Metric      enums.Metric     `json:"metric"`
	Options     Options          `json:"-"`
	Series      []ValidatedPoint `json:"-"`
	Points      MetricProjection `json:"points"`
	Stats       AggregateStats   `json:"stats"`
	Totals      Totals           `json:"totals"`
	Diagnostics Diagnostics      `json:"diagnostics"`
}

// Pipeline wires the stages together. It holds no state besides its validator.
type Pipeline struct {
	validator Validator
}

// NewPipeline builds a pipeline whose date fallback uses dates.
func NewPipeline(dates DateNormalizer) *Pipeline {
	return &Pipeline{validator: NewValidator(dates)}
}

var defaultPipeline = NewPipeline(DateNormalizer{})

// Run executes the pipeline with the default clock.
func Run(payload *Payload, opts Options) (*Result, error) {
	return defaultPipeline.Run(payload, opts)
}

// Run validates payload, merges its series and builds the view for opts.Metric.
func (p *Pipeline) Run(payload *Payload, opts Options) (*Result, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}
	prepared := p.Prepare(payload, opts.Policy)
	merged := Merge(prepared.Historical, prepared.Predictions, opts.IncludePredictions)
	return p.finish(prepared, merged, opts)
}

func (p *Pipeline) finish(prepared *Prepared, merged []ValidatedPoint, opts Options) (*Result, error) {
	points, err := Project(merged, opts.Metric)
	if err != nil {
		return nil, err
	}

	historical, predictions := partition(merged)
	stats, err := Aggregate(historical, predictions, opts.Metric, opts.Windows)
	if err != nil {
		return nil, err
	}

	return &Result{
		Metric:      opts.Metric,
		Options:     opts,
		Series:      merged,
		Points:      points,
		Stats:       stats,
		Totals:      prepared.Totals,
		Diagnostics: prepared.Diagnostics,
	}, nil
}

// Prepare validates both series of payload, applies policy and orders each series by date.
func (p *Pipeline) Prepare(payload *Payload, policy enums.FilterPolicy) *Prepared {
	if payload == nil {
		payload = &Payload{}
	}

	out := &Prepared{}
	collect := func(point ValidatedPoint, report RecordReport) {
		out.Diagnostics.add(report)
		if report.Malformed && policy == enums.FilterPolicyDropMalformed {
			out.Diagnostics.Dropped++
			return
		}
		if point.IsPrediction() {
			out.Predictions = append(out.Predictions, point)
		} else {
			out.Historical = append(out.Historical, point)
		}
	}

	for _, raw := range entries(payload.Historical) {
		point, report := p.validator.Validate(raw)
		collect(point, report)
	}
	for _, raw := range entries(payload.Predictions) {
		point, report := p.validator.ValidateAs(raw, enums.PointKindPrediction)
		collect(point, report)
	}

	SortByDate(out.Historical)
	SortByDate(out.Predictions)
	out.Totals = totals(payload, out.Historical)
	return out
}

func totals(payload *Payload, historical []ValidatedPoint) Totals {
	t := Totals{
		RevenueSource: SourceComputed,
		OrdersSource:  SourceComputed,
	}

	if IsNumeric(payload.TotalRevenue) {
		t.Revenue, _ = SanitizeField(payload.TotalRevenue, 0, TotalRevenueBounds)
		t.RevenueSource = SourceOverride
	} else {
		t.Revenue = sumField(historical, func(p ValidatedPoint) float64 { return p.Revenue })
	}

	if IsNumeric(payload.TotalOrders) {
		t.Orders, _ = SanitizeField(payload.TotalOrders, 0, TotalOrdersBounds)
		t.OrdersSource = SourceOverride
	} else {
		t.Orders = sumField(historical, func(p ValidatedPoint) float64 { return p.OrdersCount })
	}

	if IsNumeric(payload.PeriodDays) {
		t.PeriodDays, _ = SanitizeField(payload.PeriodDays, 0, PeriodDaysBounds)
	} else {
		t.PeriodDays = float64(distinctDates(historical))
	}
	return t
}

func sumField(points []ValidatedPoint, field func(ValidatedPoint) float64) float64 {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(decimal.NewFromFloat(field(p)))
	}
	return total.Round(2).InexactFloat64()
}

func distinctDates(points []ValidatedPoint) int {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		seen[p.Date] = struct{}{}
	}
	return len(seen)
}
