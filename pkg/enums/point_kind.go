package enums

import "fmt"

// PointKind tags a series sample as measured or forecasted.
type PointKind string

const (
	PointKindHistorical PointKind = "historical"
	PointKindPrediction PointKind = "prediction"
)

var validPointKinds = []PointKind{
	PointKindHistorical,
	PointKindPrediction,
}

// String implements fmt.Stringer.
func (k PointKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known PointKind.
func (k PointKind) IsValid() bool {
	for _, candidate := range validPointKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParsePointKind converts raw input into a PointKind.
func ParsePointKind(value string) (PointKind, error) {
	for _, candidate := range validPointKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid point kind %q", value)
}
