package projection

import (
	"slices"
	"time"
)

// Merge concatenates historical and predictions and stable-sorts the result by date.
// Predictions are left out entirely when includePredictions is false. Points sharing a date
// are all kept in their input order.
func Merge(historical, predictions []ValidatedPoint, includePredictions bool) []ValidatedPoint {
	size := len(historical)
	if includePredictions {
		size += len(predictions)
	}

	merged := make([]ValidatedPoint, 0, size)
	merged = append(merged, historical...)
	if includePredictions {
		merged = append(merged, predictions...)
	}

	SortByDate(merged)
	return merged
}

// SortByDate stable-sorts points ascending by their parsed date.
func SortByDate(points []ValidatedPoint) {
	keys := make(map[string]time.Time, len(points))
	for _, p := range points {
		if _, ok := keys[p.Date]; ok {
			continue
		}
		t, _ := ParseDate(p.Date)
		keys[p.Date] = t
	}

	slices.SortStableFunc(points, func(a, b ValidatedPoint) int {
		return keys[a.Date].Compare(keys[b.Date])
	})
}
