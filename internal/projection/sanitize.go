package projection

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds is the closed interval a sanitized measure is clamped to.
type Bounds struct {
	Lower float64
	Upper float64
}

var (
	RevenueBounds         = Bounds{Lower: 0, Upper: 1e9}
	OrdersBounds          = Bounds{Lower: 0, Upper: 1e6}
	ConversionRateBounds  = Bounds{Lower: 0, Upper: 100}
	AvgOrderValueBounds   = Bounds{Lower: 0, Upper: 1e6}
	ConfidenceScoreBounds = Bounds{Lower: 0, Upper: 1}
)

// FieldOutcome describes how a single field was repaired.
type FieldOutcome struct {
	Defaulted bool
	Clamped   bool
}

// Sanitize coerces value into a finite number inside [lower, upper] rounded to two
// decimal places. Anything that is not numeric after coercion, NaN or infinite yields def.
func Sanitize(value any, def, lower, upper float64) float64 {
	v, _ := SanitizeField(value, def, Bounds{Lower: lower, Upper: upper})
	return v
}

// SanitizeField is Sanitize with a report of whether the default or clamping kicked in.
func SanitizeField(value any, def float64, b Bounds) (float64, FieldOutcome) {
	n, ok := toFloat(value)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return def, FieldOutcome{Defaulted: true}
	}

	clamped := b.clamp(n)
	// Rounding can step just past a bound that is not on the 0.01 grid.
	return b.clamp(round2(clamped)), FieldOutcome{Clamped: clamped != n}
}

func (b Bounds) clamp(v float64) float64 {
	return math.Min(math.Max(v, b.Lower), b.Upper)
}

// IsNumeric reports whether value coerces to a finite number.
func IsNumeric(value any) bool {
	n, ok := toFloat(value)
	return ok && !math.IsNaN(n) && !math.IsInf(n, 0)
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		return parseNumeric(v.String())
	case decimal.Decimal:
		return v.InexactFloat64(), true
	case string:
		return parseNumeric(v)
	default:
		return 0, false
	}
}

func parseNumeric(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// Out of range literals come back as ±Inf and are rejected by the caller.
	return f, true
}
