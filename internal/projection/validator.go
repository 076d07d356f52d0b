package projection

import (
	"math"

	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
)

// RecordReport describes the repairs applied to one raw record.
type RecordReport struct {
	DefaultedFields int
	ClampedFields   int
	// Malformed is set when the raw entry was not an object or its date was missing or
	// unparseable. The record is still usable; callers decide whether to keep it.
	Malformed bool
}

func (r *RecordReport) track(o FieldOutcome) {
	if o.Defaulted {
		r.DefaultedFields++
	}
	if o.Clamped {
		r.ClampedFields++
	}
}

// Validator repairs raw records into ValidatedPoints. It never fails: malformed input
// degrades to zero-valued measures and today's date.
type Validator struct {
	Dates DateNormalizer
}

// NewValidator builds a Validator using dates for date normalization.
func NewValidator(dates DateNormalizer) Validator {
	return Validator{Dates: dates}
}

// Validate repairs raw, deriving the kind from its isPrediction flag.
func (v Validator) Validate(raw any) (ValidatedPoint, RecordReport) {
	fields, _ := asObject(raw)
	kind := enums.PointKindHistorical
	if truthy(fields["isPrediction"]) {
		kind = enums.PointKindPrediction
	}
	return v.validate(raw, kind)
}

// ValidateAs repairs raw and forces its kind, which is how series membership tags points.
func (v Validator) ValidateAs(raw any, kind enums.PointKind) (ValidatedPoint, RecordReport) {
	if !kind.IsValid() {
		return v.Validate(raw)
	}
	return v.validate(raw, kind)
}

func (v Validator) validate(raw any, kind enums.PointKind) (ValidatedPoint, RecordReport) {
	var report RecordReport

	fields, ok := asObject(raw)
	if !ok {
		report.Malformed = true
	}

	date, parsed := v.Dates.NormalizeField(fields["date"])
	if !parsed {
		report.Malformed = true
		report.DefaultedFields++
	}

	point := ValidatedPoint{
		Date: date,
		Kind: kind,
	}

	var outcome FieldOutcome
	point.Revenue, outcome = SanitizeField(fields["revenue"], 0, RevenueBounds)
	report.track(outcome)
	point.OrdersCount, outcome = SanitizeField(fields["orders_count"], 0, OrdersBounds)
	report.track(outcome)
	point.ConversionRate, outcome = SanitizeField(fields["conversion_rate"], 0, ConversionRateBounds)
	report.track(outcome)
	point.AvgOrderValue, outcome = SanitizeField(fields["avg_order_value"], 0, AvgOrderValueBounds)
	report.track(outcome)

	if kind == enums.PointKindPrediction {
		if interval, ok := asObject(fields["confidence_interval"]); ok {
			point.Confidence = v.bands(interval, &report)
		}
	}

	if rawScore, present := fields["confidence_score"]; present && rawScore != nil {
		score, outcome := SanitizeField(rawScore, 0, ConfidenceScoreBounds)
		report.track(outcome)
		point.ConfidenceScore = &score
	}

	return point, report
}

func (v Validator) bands(interval map[string]any, report *RecordReport) *ConfidenceBands {
	var (
		b       ConfidenceBands
		outcome FieldOutcome
	)
	b.RevenueMin, outcome = SanitizeField(interval["revenue_min"], 0, RevenueBounds)
	report.track(outcome)
	b.RevenueMax, outcome = SanitizeField(interval["revenue_max"], 0, RevenueBounds)
	report.track(outcome)
	b.OrdersMin, outcome = SanitizeField(interval["orders_min"], 0, OrdersBounds)
	report.track(outcome)
	b.OrdersMax, outcome = SanitizeField(interval["orders_max"], 0, OrdersBounds)
	report.track(outcome)
	return &b
}

func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, v != nil
	case RawPoint:
		return map[string]any(v), v != nil
	case *RawPoint:
		if v == nil || *v == nil {
			return nil, false
		}
		return map[string]any(*v), true
	default:
		return nil, false
	}
}

// truthy mirrors loose truthiness of decoded JSON: false, zero, NaN, empty strings and
// null are false; everything else, objects and arrays included, is true.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case float32:
		return v != 0 && !math.IsNaN(float64(v))
	case int:
		return v != 0
	case int64:
		return v != 0
	case int32:
		return v != 0
	case uint:
		return v != 0
	case uint64:
		return v != 0
	default:
		if IsNumeric(value) {
			n, _ := toFloat(value)
			return n != 0
		}
		return true
	}
}
